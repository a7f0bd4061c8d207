package quality

import (
	"fmt"

	"github.com/wonny/advisor/internal/contracts"
)

// assessRisk runs the rule list and grades overall risk from the
// quality score and the number of triggered factors
func assessRisk(fin *contracts.CompanyFinancials, bench contracts.SectorBenchmark, qualityScore float64) contracts.RiskAssessment {
	var factors []string

	if de := fin.DebtToEquity; de != nil && *de > 2.0 {
		factors = append(factors, fmt.Sprintf("High leverage: debt-to-equity %.2f", *de))
	}
	if cr := fin.CurrentRatio; cr != nil && *cr < 1.0 {
		factors = append(factors, fmt.Sprintf("Low liquidity: current ratio %.2f", *cr))
	}
	if pm := fin.ProfitMargin; pm != nil && *pm < 3.0 {
		factors = append(factors, fmt.Sprintf("Thin profit margin: %.1f%%", *pm))
	}
	if pe := fin.PERatio; pe != nil && bench.AvgPE > 0 && *pe > bench.AvgPE*1.5 {
		factors = append(factors, fmt.Sprintf("Elevated valuation: PE %.1f vs sector %.1f", *pe, bench.AvgPE))
	}
	if roe := fin.ROE; roe != nil && *roe < 5.0 {
		factors = append(factors, fmt.Sprintf("Weak returns: ROE %.1f%%", *roe))
	}

	return contracts.RiskAssessment{
		OverallRisk: overallRisk(qualityScore, len(factors)),
		Factors:     factors,
	}
}

func overallRisk(qualityScore float64, factorCount int) contracts.RiskLevel {
	switch {
	case qualityScore >= 75 && factorCount <= 1:
		return contracts.RiskLow
	case qualityScore >= 50 && factorCount <= 3:
		return contracts.RiskMedium
	default:
		return contracts.RiskHigh
	}
}
