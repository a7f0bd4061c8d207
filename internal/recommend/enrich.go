package recommend

import (
	"context"
	"fmt"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/internal/quality"
)

// DeepAnalyze runs the full per-symbol pipeline and returns the
// recommendation together with every engine's detail output, generated
// highlights and a textual entry/exit strategy.
func (o *Orchestrator) DeepAnalyze(ctx context.Context, symbol string, horizon contracts.Horizon) (*contracts.EnrichedRecommendation, error) {
	record, analysis, err := o.analyze(ctx, symbol, horizon)
	if err != nil {
		return nil, err
	}
	return o.enrich(record, analysis), nil
}

func (o *Orchestrator) enrich(record *contracts.RecommendationRecord, analysis *symbolAnalysis) *contracts.EnrichedRecommendation {
	enriched := &contracts.EnrichedRecommendation{
		RecommendationRecord: *record,
		Technical:            analysis.techSnap,
		Fundamental:          analysis.fundSnap,
		Quality:              analysis.quality,
		Sentiment:            analysis.sentSummary,
		Highlights:           buildHighlights(record, analysis),
		Strategy:             buildStrategy(record),
		MarketContext:        marketContext(analysis),
		Catalysts:            buildCatalysts(analysis),
		CompetitivePosition:  competitivePosition(analysis),
	}
	return enriched
}

func buildHighlights(record *contracts.RecommendationRecord, analysis *symbolAnalysis) []string {
	var highlights []string

	highlights = append(highlights, fmt.Sprintf("%s: %s with %.0f%% confidence over a %s horizon",
		record.Symbol, record.Action, record.Confidence, record.TimeHorizon))

	if t := analysis.techSnap; t != nil && t.Trend != contracts.TrendNeutral {
		highlights = append(highlights, fmt.Sprintf("Technical trend %s, momentum volume %s", t.Trend, t.Momentum.Volume))
	}
	if f := analysis.fundSnap; f != nil {
		highlights = append(highlights, fmt.Sprintf("Fundamental composite %.0f, financial health %s",
			f.Scores.Composite, f.FinancialHealth.StrengthRating))
	}
	if q := analysis.quality; q != nil {
		highlights = append(highlights, fmt.Sprintf("Quality grade %s, %s", q.QualityGrade, q.Evaluation.Verdict))
	}

	return highlights
}

// buildStrategy renders entry, target and stop into one actionable
// sentence
func buildStrategy(record *contracts.RecommendationRecord) string {
	upside := 0.0
	downside := 0.0
	if record.CurrentPrice > 0 {
		upside = (record.TargetPrice/record.CurrentPrice - 1) * 100
		downside = (1 - record.StopLoss/record.CurrentPrice) * 100
	}

	return fmt.Sprintf("Enter near %.2f, target %.2f (%+.1f%%), stop-loss %.2f (-%.1f%%)",
		record.EntryPoint, record.TargetPrice, upside, record.StopLoss, downside)
}

// marketContext is a placeholder readout until a dedicated macro
// provider exists; it reflects only what the per-symbol views imply
func marketContext(analysis *symbolAnalysis) string {
	if t := analysis.techSnap; t != nil {
		return fmt.Sprintf("Symbol-level context: %s trend, %s volume regime", t.Trend, t.Momentum.Volume)
	}
	return "Market context unavailable"
}

func buildCatalysts(analysis *symbolAnalysis) []string {
	var catalysts []string

	if q := analysis.quality; q != nil {
		if trend, ok := q.FinancialTrends[quality.TrendRevenue]; ok && trend.Direction == contracts.TrendImproving {
			catalysts = append(catalysts, "Sustained multi-year revenue growth")
		}
		if trend, ok := q.FinancialTrends[quality.TrendProfit]; ok && trend.Direction == contracts.TrendImproving {
			catalysts = append(catalysts, "Expanding profitability trend")
		}
	}
	if f := analysis.fundSnap; f != nil {
		if m := f.Scores.Momentum; m != nil && *m >= 65 {
			catalysts = append(catalysts, "Accelerating fundamental momentum")
		}
	}
	if analysis.sentiment.Measured && analysis.sentSummary.Score >= 65 {
		catalysts = append(catalysts, fmt.Sprintf("Favorable news flow (%d recent articles)", analysis.sentSummary.ArticleCount))
	}

	return catalysts
}

func competitivePosition(analysis *symbolAnalysis) string {
	q := analysis.quality
	if q == nil {
		return "Sector positioning unavailable"
	}
	return fmt.Sprintf("Ranks %s within its sector (%.0fth percentile)",
		q.SectorComparison.OverallRanking, q.SectorComparison.OverallPct)
}
