package fundamental

import (
	"math"

	"github.com/wonny/advisor/internal/contracts"
)

// factorScores computes the four valuation sub-scores: nil when the
// inputs a sub-score needs are entirely absent, otherwise a base-50
// score with bounded adjustments from sector-relative or absolute
// bands. The composite blends whatever is present.
func factorScores(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) contracts.FactorScores {
	scores := contracts.FactorScores{
		Value:    valueScore(fin, bench),
		Growth:   growthScore(fin, bench),
		Quality:  qualityScore(fin),
		Momentum: momentumScore(fin),
	}
	scores.Composite = scores.CompositeScore()
	return scores
}

// relativeDelta scores a lower-better ratio versus its benchmark with
// a bounded symmetric delta
func relativeDelta(company, sectorAvg, maxDelta float64) float64 {
	if sectorAvg == 0 {
		return 0
	}
	ratio := company / sectorAvg
	switch {
	case ratio <= 0.7:
		return maxDelta
	case ratio <= 0.85:
		return maxDelta / 2
	case ratio <= 1.15:
		return 0
	case ratio <= 1.3:
		return -maxDelta / 2
	default:
		return -maxDelta
	}
}

func valueScore(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) *float64 {
	if fin.PERatio == nil && fin.PBRatio == nil && fin.PSRatio == nil {
		return nil
	}

	score := 50.0

	if fin.PERatio != nil && *fin.PERatio > 0 {
		score += relativeDelta(*fin.PERatio, bench.AvgPE, 20)
	}
	if fin.PBRatio != nil && *fin.PBRatio > 0 {
		score += relativeDelta(*fin.PBRatio, bench.AvgPB, 15)
	}
	if fin.PSRatio != nil && *fin.PSRatio > 0 {
		score += relativeDelta(*fin.PSRatio, bench.AvgPS, 10)
	}
	if fin.DividendYield != nil {
		switch {
		case *fin.DividendYield > 3.0:
			score += 5
		case *fin.DividendYield > 1.5:
			score += 2
		}
	}

	return ptr(clamp(score, 0, 100))
}

func growthScore(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) *float64 {
	if fin.RevenueGrowth1Y == nil && fin.EarningsGrowth1Y == nil &&
		fin.RevenueGrowth3Y == nil && fin.EarningsGrowth3Y == nil {
		return nil
	}

	score := 50.0

	if rg := fin.RevenueGrowth1Y; rg != nil {
		// Sector-relative first, absolute bands as fallback shading
		if bench.AvgRevenueGrowth > 0 && *rg > bench.AvgRevenueGrowth*1.5 {
			score += 15
		}
		switch {
		case *rg > 20:
			score += 15
		case *rg > 10:
			score += 8
		case *rg > 0:
			score += 3
		case *rg > -10:
			score -= 8
		default:
			score -= 15
		}
	}

	if eg := fin.EarningsGrowth1Y; eg != nil {
		switch {
		case *eg > 25:
			score += 15
		case *eg > 10:
			score += 8
		case *eg > 0:
			score += 3
		case *eg > -15:
			score -= 8
		default:
			score -= 15
		}
	}

	if avg := AverageNonNil(fin.RevenueGrowth3Y, fin.RevenueGrowth5Y); avg != nil && *avg > 8 {
		score += 5
	}
	if fin.BookValueGrowth != nil && *fin.BookValueGrowth > 10 {
		score += 3
	}

	return ptr(clamp(score, 0, 100))
}

func qualityScore(fin *contracts.CompanyFinancials) *float64 {
	if fin.ROE == nil && fin.ProfitMargin == nil && fin.OperatingMargin == nil {
		return nil
	}

	score := 50.0

	if roe := fin.ROE; roe != nil {
		switch {
		case *roe > 20:
			score += 20
		case *roe > 15:
			score += 12
		case *roe > 8:
			score += 5
		case *roe > 0:
			// thin but positive
		default:
			score -= 20
		}
	}

	if pm := fin.ProfitMargin; pm != nil {
		switch {
		case *pm > 15:
			score += 10
		case *pm > 5:
			score += 5
		case *pm < 0:
			score -= 15
		}
	}

	if om := fin.OperatingMargin; om != nil && *om > 20 {
		score += 5
	}

	if de := fin.DebtToEquity; de != nil {
		switch {
		case *de < 0.5:
			score += 10
		case *de > 2.0:
			score -= 10
		}
	}

	return ptr(clamp(score, 0, 100))
}

// momentumScore reads fundamental momentum: growth acceleration and
// improving earnings expectations
func momentumScore(fin *contracts.CompanyFinancials) *float64 {
	hasAccel := fin.RevenueGrowth1Y != nil && fin.RevenueGrowth3Y != nil
	hasEarnAccel := fin.EarningsGrowth1Y != nil && fin.EarningsGrowth3Y != nil
	hasForward := fin.ForwardPE != nil && fin.PERatio != nil

	if !hasAccel && !hasEarnAccel && !hasForward {
		return nil
	}

	score := 50.0

	if hasAccel {
		if *fin.RevenueGrowth1Y > *fin.RevenueGrowth3Y {
			score += 15
		} else {
			score -= 10
		}
	}

	if hasEarnAccel {
		if *fin.EarningsGrowth1Y > *fin.EarningsGrowth3Y {
			score += 15
		} else {
			score -= 10
		}
	}

	// Forward PE below trailing PE implies expected earnings growth
	if hasForward && *fin.PERatio > 0 {
		if *fin.ForwardPE < *fin.PERatio {
			score += 10
		} else {
			score -= 5
		}
	}

	return ptr(clamp(score, 0, 100))
}

// deriveRecommendation maps the mean of the composite, financial-health
// and sector scores onto the action ladder. Confidence is nudged up
// when the sub-scores agree and the balance sheet is strong.
func deriveRecommendation(scores contracts.FactorScores, health contracts.FinancialHealth, sector float64) (contracts.Action, float64) {
	mean := (scores.Composite + health.OverallScore + sector) / 3.0

	confidence := mean

	// Low variance across sub-scores means the views agree
	var present []float64
	for _, s := range []*float64{scores.Value, scores.Growth, scores.Quality, scores.Momentum} {
		if s != nil {
			present = append(present, *s)
		}
	}
	if len(present) >= 2 && stdDev(present) < 10 {
		confidence += 5
	}
	if health.OverallScore >= 70 {
		confidence += 5
	}

	confidence = clamp(confidence, 0, 100)
	return contracts.ActionForConfidence(confidence), confidence
}

func stdDev(values []float64) float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}
