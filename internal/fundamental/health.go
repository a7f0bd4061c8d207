package fundamental

import "github.com/wonny/advisor/internal/contracts"

// Altman Z-Score coefficients: working capital, retained earnings,
// EBIT, market value of equity, sales
const (
	altmanWC    = 1.2
	altmanRE    = 1.4
	altmanEBIT  = 3.3
	altmanMVE   = 0.6
	altmanSales = 1.0
)

// assessHealth scores liquidity, solvency and efficiency from ratio
// bands, then folds in the Altman Z-Score. Each sub-score starts at a
// base of 50 and applies bounded additive adjustments; the overall
// score is the unweighted mean of the three.
func assessHealth(fin *contracts.CompanyFinancials) contracts.FinancialHealth {
	liquidity := liquidityScore(fin)
	solvency := solvencyScore(fin)
	efficiency := efficiencyScore(fin)

	overall := (liquidity + solvency + efficiency) / 3.0

	health := contracts.FinancialHealth{
		LiquidityScore:  liquidity,
		SolvencyScore:   solvency,
		EfficiencyScore: efficiency,
		OverallScore:    overall,
		StrengthRating:  strengthRating(overall),
		RiskLevel:       healthRisk(overall),
		BankruptcyRisk:  contracts.RiskMedium,
	}

	if z := altmanZScore(fin); z != nil {
		health.AltmanZScore = z
		health.BankruptcyRisk = bankruptcyRisk(*z)
	}

	return health
}

func liquidityScore(fin *contracts.CompanyFinancials) float64 {
	score := 50.0

	if cr := fin.CurrentRatio; cr != nil {
		switch {
		case *cr >= 1.5 && *cr <= 3.0:
			score += 20
		case *cr >= 1.0 && *cr < 1.5:
			score += 10
		case *cr > 3.0:
			score += 5 // hoarding cash, mildly positive
		default: // < 1.0
			score -= 20
		}
	}

	if qr := fin.QuickRatio; qr != nil {
		switch {
		case *qr >= 1.0:
			score += 15
		case *qr >= 0.5:
			score += 5
		default:
			score -= 10
		}
	}

	if cash := fin.CashRatio; cash != nil {
		switch {
		case *cash >= 0.5:
			score += 15
		case *cash >= 0.2:
			score += 5
		}
	}

	return clamp(score, 0, 100)
}

func solvencyScore(fin *contracts.CompanyFinancials) float64 {
	score := 50.0

	if de := fin.DebtToEquity; de != nil {
		switch {
		case *de < 0.5:
			score += 20
		case *de < 1.0:
			score += 10
		case *de < 2.0:
			// neutral
		default:
			score -= 20
		}
	}

	if dr := fin.DebtRatio; dr != nil {
		switch {
		case *dr < 0.4:
			score += 15
		case *dr < 0.6:
			score += 5
		default:
			score -= 10
		}
	}

	if ic := fin.InterestCoverage; ic != nil {
		switch {
		case *ic > 10:
			score += 15
		case *ic > 5:
			score += 10
		case *ic > 2:
			// neutral
		default:
			score -= 15
		}
	}

	return clamp(score, 0, 100)
}

func efficiencyScore(fin *contracts.CompanyFinancials) float64 {
	score := 50.0

	if at := fin.AssetTurnover; at != nil {
		switch {
		case *at > 1.0:
			score += 15
		case *at > 0.5:
			score += 5
		default:
			score -= 5
		}
	}

	if it := fin.InventoryTurnover; it != nil {
		switch {
		case *it > 6:
			score += 15
		case *it > 3:
			score += 5
		}
	}

	if rt := fin.ReceivablesTurnover; rt != nil {
		switch {
		case *rt > 8:
			score += 10
		case *rt > 4:
			score += 5
		}
	}

	return clamp(score, 0, 100)
}

// altmanZScore computes the classic five-term bankruptcy formula.
// Requires total assets and total liabilities; nil when either is
// missing or non-positive.
func altmanZScore(fin *contracts.CompanyFinancials) *float64 {
	if fin.TotalAssets == nil || *fin.TotalAssets <= 0 {
		return nil
	}
	if fin.TotalLiabilities == nil || *fin.TotalLiabilities <= 0 {
		return nil
	}

	ta := *fin.TotalAssets
	tl := *fin.TotalLiabilities

	var z float64
	if fin.WorkingCapital != nil {
		z += altmanWC * (*fin.WorkingCapital / ta)
	}
	if fin.RetainedEarnings != nil {
		z += altmanRE * (*fin.RetainedEarnings / ta)
	}
	if fin.EBIT != nil {
		z += altmanEBIT * (*fin.EBIT / ta)
	}
	if fin.MarketCap != nil {
		z += altmanMVE * (*fin.MarketCap / tl)
	}
	if fin.Revenue != nil {
		z += altmanSales * (*fin.Revenue / ta)
	}

	return &z
}

// bankruptcyRisk maps an Altman Z-Score to its conventional zones
func bankruptcyRisk(z float64) contracts.RiskLevel {
	switch {
	case z > 2.99:
		return contracts.RiskLow
	case z > 1.8:
		return contracts.RiskMedium
	default:
		return contracts.RiskHigh
	}
}

func strengthRating(overall float64) contracts.StrengthRating {
	switch {
	case overall >= 85:
		return contracts.StrengthExcellent
	case overall >= 70:
		return contracts.StrengthStrong
	case overall >= 50:
		return contracts.StrengthModerate
	case overall >= 35:
		return contracts.StrengthWeak
	default:
		return contracts.StrengthPoor
	}
}

func healthRisk(overall float64) contracts.RiskLevel {
	switch {
	case overall >= 70:
		return contracts.RiskLow
	case overall >= 45:
		return contracts.RiskMedium
	default:
		return contracts.RiskHigh
	}
}
