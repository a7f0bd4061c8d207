package quality

import "github.com/wonny/advisor/internal/contracts"

// evaluateValuation averages the company/benchmark ratios for PE, PB
// and PS into a single valuation ratio and maps it to a verdict.
// Confidence is High at the extremes, Medium around fair value, Low
// when no ratio could be compared (the verdict then defaults to
// fairly valued at ratio 1.0).
func evaluateValuation(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) contracts.ValuationEvaluation {
	var sum float64
	var count int

	if fin.PERatio != nil && *fin.PERatio > 0 && bench.AvgPE > 0 {
		sum += *fin.PERatio / bench.AvgPE
		count++
	}
	if fin.PBRatio != nil && *fin.PBRatio > 0 && bench.AvgPB > 0 {
		sum += *fin.PBRatio / bench.AvgPB
		count++
	}
	if fin.PSRatio != nil && *fin.PSRatio > 0 && bench.AvgPS > 0 {
		sum += *fin.PSRatio / bench.AvgPS
		count++
	}

	if count == 0 {
		return contracts.ValuationEvaluation{
			Verdict:        contracts.VerdictFairlyValued,
			Confidence:     contracts.ConfidenceLow,
			ValuationRatio: 1.0,
		}
	}

	ratio := sum / float64(count)

	return contracts.ValuationEvaluation{
		Verdict:        verdictForRatio(ratio),
		Confidence:     confidenceForRatio(ratio),
		ValuationRatio: ratio,
	}
}

func verdictForRatio(ratio float64) contracts.Verdict {
	switch {
	case ratio >= 1.5:
		return contracts.VerdictSeverelyOvervalued
	case ratio >= 1.2:
		return contracts.VerdictOvervalued
	case ratio <= 0.6:
		return contracts.VerdictDeeplyUndervalued
	case ratio <= 0.8:
		return contracts.VerdictUndervalued
	default:
		return contracts.VerdictFairlyValued
	}
}

func confidenceForRatio(ratio float64) contracts.ConfidenceLevel {
	if ratio >= 1.5 || ratio <= 0.6 {
		return contracts.ConfidenceHigh
	}
	return contracts.ConfidenceMedium
}

// compareAgainstSector ranks the company's headline metrics inside its
// sector with the shared direction-aware percentile buckets
func compareAgainstSector(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) contracts.SectorComparison {
	percentiles := make(map[string]float64)

	add := func(key string, company *float64, sectorAvg float64, higherBetter bool) {
		if company == nil || sectorAvg == 0 {
			return
		}
		percentiles[key] = contracts.PercentileForRatio(*company/sectorAvg, higherBetter)
	}

	add("pe", fin.PERatio, bench.AvgPE, false)
	add("pb", fin.PBRatio, bench.AvgPB, false)
	add("roe", fin.ROE, bench.AvgROE, true)
	add("debt_to_equity", fin.DebtToEquity, bench.AvgDebtEquity, false)
	add("profit_margin", fin.ProfitMargin, bench.AvgProfitMargin, true)
	add("revenue_growth", fin.RevenueGrowth1Y, bench.AvgRevenueGrowth, true)

	overall := 50.0
	if len(percentiles) > 0 {
		var sum float64
		for _, p := range percentiles {
			sum += p
		}
		overall = sum / float64(len(percentiles))
	}

	return contracts.SectorComparison{
		Percentiles:    percentiles,
		OverallPct:     overall,
		OverallRanking: contracts.TierForPercentile(overall),
	}
}
