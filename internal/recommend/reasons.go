package recommend

import (
	"fmt"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/internal/quality"
	"github.com/wonny/advisor/internal/technical"
)

// buildReasons assembles the human-readable case for the
// recommendation from whichever views produced data
func buildReasons(a *symbolAnalysis) []string {
	var reasons []string

	if t := a.techSnap; t != nil {
		switch t.Trend {
		case contracts.TrendBullish:
			reasons = append(reasons, fmt.Sprintf("Bullish technical trend with strength %.0f", t.Strength))
		case contracts.TrendBearish:
			reasons = append(reasons, fmt.Sprintf("Bearish technical trend with strength %.0f", t.Strength))
		}

		if rsi, ok := t.Indicator(technical.IndRSI); ok {
			switch t.SignalFor(technical.IndRSI) {
			case contracts.SignalOversold:
				reasons = append(reasons, fmt.Sprintf("RSI %.1f in oversold territory", rsi))
			case contracts.SignalOverbought:
				reasons = append(reasons, fmt.Sprintf("RSI %.1f in overbought territory", rsi))
			}
		}

		if t.SignalFor(technical.IndMACD) == contracts.SignalBullish {
			reasons = append(reasons, "MACD above its signal line")
		}
	}

	if f := a.fundSnap; f != nil {
		if f.Scores.Composite >= 65 {
			reasons = append(reasons, fmt.Sprintf("Strong fundamentals: composite score %.0f", f.Scores.Composite))
		}
		if f.FinancialHealth.OverallScore >= 70 {
			reasons = append(reasons, fmt.Sprintf("Robust financial health (%s)", f.FinancialHealth.StrengthRating))
		}
		if v := f.Scores.Value; v != nil && *v >= 70 {
			reasons = append(reasons, "Attractive valuation versus sector peers")
		}
		if g := f.Scores.Growth; g != nil && *g >= 70 {
			reasons = append(reasons, "Above-sector growth profile")
		}
	}

	if q := a.quality; q != nil {
		if q.QualityGrade == contracts.GradeExcellent || q.QualityGrade == contracts.GradeGood {
			reasons = append(reasons, fmt.Sprintf("Quality grade %s (score %.0f)", q.QualityGrade, q.QualityScore))
		}
		switch q.Evaluation.Verdict {
		case contracts.VerdictUndervalued, contracts.VerdictDeeplyUndervalued:
			reasons = append(reasons, fmt.Sprintf("%s at %.2fx sector valuation", q.Evaluation.Verdict, q.Evaluation.ValuationRatio))
		}
		if trend, ok := q.FinancialTrends[quality.TrendOverall]; ok && trend.Direction == contracts.TrendImproving {
			reasons = append(reasons, "Improving multi-year financial trend")
		}
	}

	if a.sentiment.Measured && a.sentSummary.Score >= 65 {
		reasons = append(reasons, fmt.Sprintf("Positive news sentiment across %d articles", a.sentSummary.ArticleCount))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "No strong directional evidence; neutral stance")
	}

	return reasons
}

// buildRisks assembles the risk side: rule-based factors from the
// quality view plus any sub-analysis that fell back to its default
func buildRisks(a *symbolAnalysis) []string {
	var risks []string

	if q := a.quality; q != nil {
		risks = append(risks, q.Risk.Factors...)
	}

	if f := a.fundSnap; f != nil && f.FinancialHealth.BankruptcyRisk == contracts.RiskHigh {
		risks = append(risks, "Altman Z-Score in the distress zone")
	}

	if t := a.techSnap; t != nil {
		if t.SignalFor(technical.IndRSI) == contracts.SignalOverbought {
			risks = append(risks, "Overbought conditions raise pullback risk")
		}
		if t.Trend == contracts.TrendBearish {
			risks = append(risks, "Prevailing technical downtrend")
		}
	}

	if a.sentiment.Measured && a.sentSummary.Score <= 35 {
		risks = append(risks, fmt.Sprintf("Negative news sentiment across %d articles", a.sentSummary.ArticleCount))
	}

	if !a.technical.Measured {
		risks = append(risks, "Technical view unavailable; neutral default used")
	}
	if !a.fundamental.Measured {
		risks = append(risks, "Fundamental view unavailable; neutral default used")
	}
	if !a.sentiment.Measured {
		risks = append(risks, "Sentiment view unavailable; neutral default used")
	}

	return risks
}
