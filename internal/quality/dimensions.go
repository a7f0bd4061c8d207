package quality

import (
	"github.com/wonny/advisor/internal/contracts"
)

// scoreDimensions computes the five quality dimensions. Inputs a
// dimension needs but cannot find leave it at its neutral base of 50.
func scoreDimensions(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) contracts.QualityDimensions {
	return contracts.QualityDimensions{
		Growth:    growthDimension(fin, bench),
		Value:     valueDimension(fin, bench),
		Quality:   qualityDimension(fin, bench),
		Momentum:  momentumDimension(fin),
		Stability: stabilityDimension(fin),
	}
}

func growthDimension(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) float64 {
	score := 50.0

	if rg := fin.RevenueGrowth1Y; rg != nil {
		if bench.AvgRevenueGrowth > 0 && *rg > bench.AvgRevenueGrowth*1.5 {
			score += 25
		} else if bench.AvgRevenueGrowth > 0 && *rg > bench.AvgRevenueGrowth {
			score += 10
		}
		if *rg < 0 {
			score -= 20
		}
	}

	if eg := fin.EarningsGrowth1Y; eg != nil {
		switch {
		case *eg > 20:
			score += 15
		case *eg > 5:
			score += 8
		case *eg < -10:
			score -= 15
		}
	}

	if avg := averageGrowth(fin.RevenueGrowth3Y, fin.RevenueGrowth5Y); avg != nil && *avg > 10 {
		score += 10
	}

	return clamp(score, 0, 100)
}

func valueDimension(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) float64 {
	score := 50.0

	if pe := fin.PERatio; pe != nil && *pe > 0 && bench.AvgPE > 0 {
		ratio := *pe / bench.AvgPE
		switch {
		case ratio <= 0.7:
			score += 20
		case ratio <= 0.9:
			score += 10
		case ratio >= 1.5:
			score -= 20
		case ratio >= 1.2:
			score -= 10
		}
	}

	if pb := fin.PBRatio; pb != nil && *pb > 0 && bench.AvgPB > 0 {
		ratio := *pb / bench.AvgPB
		switch {
		case ratio <= 0.7:
			score += 15
		case ratio >= 1.5:
			score -= 15
		}
	}

	if dy := fin.DividendYield; dy != nil && *dy > 2.5 {
		score += 10
	}

	return clamp(score, 0, 100)
}

func qualityDimension(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) float64 {
	score := 50.0

	if roe := fin.ROE; roe != nil {
		if bench.AvgROE > 0 && *roe > bench.AvgROE*1.5 {
			score += 20
		} else if *roe > 15 {
			score += 12
		} else if *roe < 0 {
			score -= 20
		}
	}

	if pm := fin.ProfitMargin; pm != nil {
		switch {
		case bench.AvgProfitMargin > 0 && *pm > bench.AvgProfitMargin*1.5:
			score += 15
		case *pm > 10:
			score += 8
		case *pm < 0:
			score -= 15
		}
	}

	if de := fin.DebtToEquity; de != nil {
		switch {
		case *de < 0.5:
			score += 10
		case *de > 2.0:
			score -= 15
		}
	}

	if ic := fin.InterestCoverage; ic != nil && *ic > 10 {
		score += 5
	}

	return clamp(score, 0, 100)
}

func momentumDimension(fin *contracts.CompanyFinancials) float64 {
	score := 50.0

	if fin.RevenueGrowth1Y != nil && fin.RevenueGrowth3Y != nil {
		if *fin.RevenueGrowth1Y > *fin.RevenueGrowth3Y {
			score += 20
		} else {
			score -= 10
		}
	}

	if fin.EarningsGrowth1Y != nil && fin.EarningsGrowth3Y != nil {
		if *fin.EarningsGrowth1Y > *fin.EarningsGrowth3Y {
			score += 20
		} else {
			score -= 10
		}
	}

	if fin.ForwardPE != nil && fin.PERatio != nil && *fin.PERatio > 0 {
		if *fin.ForwardPE < *fin.PERatio {
			score += 10
		}
	}

	return clamp(score, 0, 100)
}

// stabilityDimension rewards balance-sheet cushion and low variance in
// the multi-year history series
func stabilityDimension(fin *contracts.CompanyFinancials) float64 {
	score := 50.0

	if cr := fin.CurrentRatio; cr != nil {
		switch {
		case *cr >= 1.5 && *cr <= 3.0:
			score += 15
		case *cr < 1.0:
			score -= 15
		}
	}

	if de := fin.DebtToEquity; de != nil && *de < 1.0 {
		score += 10
	}

	if len(fin.RevenueHistory) >= 3 {
		score += varianceBonus(coefficientOfVariation(fin.RevenueHistory))
	}
	if len(fin.ProfitHistory) >= 3 {
		score += varianceBonus(coefficientOfVariation(fin.ProfitHistory))
	}

	return clamp(score, 0, 100)
}

// varianceBonus converts a coefficient of variation into a bounded
// stability adjustment: tight series gain, volatile series lose
func varianceBonus(cv float64) float64 {
	switch {
	case cv < 0.1:
		return 12
	case cv < 0.25:
		return 6
	case cv < 0.5:
		return 0
	default:
		return -10
	}
}

func averageGrowth(values ...*float64) *float64 {
	var sum float64
	var count int
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
