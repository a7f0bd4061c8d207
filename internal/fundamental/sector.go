package fundamental

import "github.com/wonny/advisor/internal/contracts"

// Peer comparison metric keys
const (
	MetricPE         = "pe"
	MetricPB         = "pb"
	MetricROE        = "roe"
	MetricDebtEquity = "debt_to_equity"
)

// comparePeers ranks PE, PB, ROE and debt-to-equity against the sector
// benchmark table. Valuation and leverage metrics are lower-better,
// returns are higher-better. Metrics missing on the company side are
// skipped.
func comparePeers(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark) map[string]contracts.PeerMetric {
	comparison := make(map[string]contracts.PeerMetric)

	add := func(key string, company *float64, sectorAvg float64, higherBetter bool) {
		if company == nil || sectorAvg == 0 {
			return
		}
		ratio := *company / sectorAvg
		pct := contracts.PercentileForRatio(ratio, higherBetter)
		comparison[key] = contracts.PeerMetric{
			Company:    *company,
			SectorAvg:  sectorAvg,
			Percentile: pct,
			Assessment: contracts.AssessmentForPercentile(pct),
		}
	}

	add(MetricPE, fin.PERatio, bench.AvgPE, false)
	add(MetricPB, fin.PBRatio, bench.AvgPB, false)
	add(MetricROE, fin.ROE, bench.AvgROE, true)
	add(MetricDebtEquity, fin.DebtToEquity, bench.AvgDebtEquity, false)

	return comparison
}

// sectorScore averages the numeric assessment values across compared
// metrics; 50 when nothing could be compared
func sectorScore(comparison map[string]contracts.PeerMetric) float64 {
	if len(comparison) == 0 {
		return 50.0
	}

	var sum float64
	for _, m := range comparison {
		sum += contracts.AssessmentScore(m.Assessment)
	}
	return sum / float64(len(comparison))
}
