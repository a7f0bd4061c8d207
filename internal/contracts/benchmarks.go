package contracts

// SectorBenchmark holds average ratio values for one industry sector,
// used for relative scoring. Immutable configuration injected into the
// engines so tests can substitute alternate tables.
type SectorBenchmark struct {
	AvgPE            float64 `json:"avg_pe"`
	AvgPB            float64 `json:"avg_pb"`
	AvgPS            float64 `json:"avg_ps"`
	AvgROE           float64 `json:"avg_roe"`            // percent
	AvgDebtEquity    float64 `json:"avg_debt_equity"`    // ratio
	AvgRevenueGrowth float64 `json:"avg_revenue_growth"` // percent
	AvgProfitMargin  float64 `json:"avg_profit_margin"`  // percent
}

// GenericSector is the fallback key when a sector is unknown
const GenericSector = "Generic"

// DefaultSectorBenchmarks returns the fixed 10-sector benchmark table
// plus a generic fallback
func DefaultSectorBenchmarks() map[string]SectorBenchmark {
	return map[string]SectorBenchmark{
		"Technology":             {AvgPE: 28.0, AvgPB: 6.5, AvgPS: 6.0, AvgROE: 22.0, AvgDebtEquity: 0.6, AvgRevenueGrowth: 12.0, AvgProfitMargin: 18.0},
		"Healthcare":             {AvgPE: 24.0, AvgPB: 4.2, AvgPS: 4.5, AvgROE: 16.0, AvgDebtEquity: 0.7, AvgRevenueGrowth: 8.0, AvgProfitMargin: 12.0},
		"Financial Services":     {AvgPE: 13.0, AvgPB: 1.4, AvgPS: 3.0, AvgROE: 12.0, AvgDebtEquity: 1.5, AvgRevenueGrowth: 5.0, AvgProfitMargin: 22.0},
		"Consumer Cyclical":      {AvgPE: 20.0, AvgPB: 3.5, AvgPS: 1.5, AvgROE: 15.0, AvgDebtEquity: 1.0, AvgRevenueGrowth: 6.0, AvgProfitMargin: 8.0},
		"Consumer Defensive":     {AvgPE: 21.0, AvgPB: 4.0, AvgPS: 1.2, AvgROE: 18.0, AvgDebtEquity: 0.9, AvgRevenueGrowth: 4.0, AvgProfitMargin: 7.0},
		"Industrials":            {AvgPE: 19.0, AvgPB: 3.8, AvgPS: 1.8, AvgROE: 14.0, AvgDebtEquity: 1.1, AvgRevenueGrowth: 5.0, AvgProfitMargin: 9.0},
		"Energy":                 {AvgPE: 11.0, AvgPB: 1.8, AvgPS: 1.1, AvgROE: 13.0, AvgDebtEquity: 0.8, AvgRevenueGrowth: 3.0, AvgProfitMargin: 10.0},
		"Utilities":              {AvgPE: 17.0, AvgPB: 1.9, AvgPS: 2.4, AvgROE: 9.0, AvgDebtEquity: 1.4, AvgRevenueGrowth: 2.0, AvgProfitMargin: 11.0},
		"Real Estate":            {AvgPE: 32.0, AvgPB: 2.2, AvgPS: 6.5, AvgROE: 7.0, AvgDebtEquity: 1.3, AvgRevenueGrowth: 4.0, AvgProfitMargin: 20.0},
		"Communication Services": {AvgPE: 18.0, AvgPB: 3.0, AvgPS: 2.8, AvgROE: 14.0, AvgDebtEquity: 0.9, AvgRevenueGrowth: 7.0, AvgProfitMargin: 13.0},
		GenericSector:            {AvgPE: 20.0, AvgPB: 3.0, AvgPS: 2.5, AvgROE: 14.0, AvgDebtEquity: 1.0, AvgRevenueGrowth: 6.0, AvgProfitMargin: 12.0},
	}
}

// BenchmarkFor resolves a sector benchmark with the generic fallback
func BenchmarkFor(benchmarks map[string]SectorBenchmark, sector string) SectorBenchmark {
	if b, ok := benchmarks[sector]; ok {
		return b
	}
	return benchmarks[GenericSector]
}

// PercentileForRatio buckets a company/benchmark ratio into a sector
// percentile. Direction-aware: for lower-better metrics (valuation,
// leverage) a smaller ratio ranks higher; for higher-better metrics
// (returns) the buckets mirror. Monotonic: a worse ratio never yields
// a higher percentile.
func PercentileForRatio(ratio float64, higherBetter bool) float64 {
	if higherBetter {
		switch {
		case ratio >= 1.3:
			return 90
		case ratio >= 1.15:
			return 75
		case ratio >= 0.85:
			return 50
		case ratio >= 0.7:
			return 25
		default:
			return 10
		}
	}

	switch {
	case ratio <= 0.7:
		return 90
	case ratio <= 0.85:
		return 75
	case ratio <= 1.15:
		return 50
	case ratio <= 1.3:
		return 25
	default:
		return 10
	}
}

// AssessmentForPercentile maps a percentile bucket to its assessment
func AssessmentForPercentile(p float64) Assessment {
	switch {
	case p >= 90:
		return AssessExcellent
	case p >= 75:
		return AssessGood
	case p >= 50:
		return AssessAverage
	case p >= 25:
		return AssessBelowAverage
	default:
		return AssessPoor
	}
}

// AssessmentScore maps an assessment back to a numeric score for
// averaging into an overall sector score
func AssessmentScore(a Assessment) float64 {
	switch a {
	case AssessExcellent:
		return 90
	case AssessGood:
		return 75
	case AssessAverage:
		return 50
	case AssessBelowAverage:
		return 30
	default:
		return 15
	}
}
