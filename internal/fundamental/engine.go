package fundamental

import (
	"fmt"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/logger"
)

// Engine computes a FundamentalSnapshot from normalized company
// financials. Partial data degrades gracefully: derived metrics that
// need missing sections become nil, only a wholly absent input is an
// error.
type Engine struct {
	benchmarks map[string]contracts.SectorBenchmark
	logger     *logger.Logger
}

// NewEngine creates a fundamental engine with the default sector
// benchmark table
func NewEngine(log *logger.Logger) *Engine {
	return NewEngineWithBenchmarks(contracts.DefaultSectorBenchmarks(), log)
}

// NewEngineWithBenchmarks creates a fundamental engine with an
// injected benchmark table (test doubles use alternate tables)
func NewEngineWithBenchmarks(benchmarks map[string]contracts.SectorBenchmark, log *logger.Logger) *Engine {
	return &Engine{
		benchmarks: benchmarks,
		logger:     log,
	}
}

// Analyze computes the full fundamental snapshot for one company
func (e *Engine) Analyze(fin *contracts.CompanyFinancials) (*contracts.FundamentalSnapshot, error) {
	if fin == nil {
		return nil, fmt.Errorf("nil company financials")
	}

	bench := contracts.BenchmarkFor(e.benchmarks, fin.Sector)

	health := assessHealth(fin)
	peers := comparePeers(fin, bench)
	scores := factorScores(fin, bench)
	action, confidence := deriveRecommendation(scores, health, sectorScore(peers))

	snapshot := &contracts.FundamentalSnapshot{
		Symbol:          fin.Symbol,
		Sector:          fin.Sector,
		Ratios:          collectRatios(fin),
		Growth:          collectGrowth(fin),
		FinancialHealth: health,
		PeerComparison:  peers,
		Scores:          scores,
		Action:          action,
		Confidence:      confidence,
	}

	e.logger.WithFields(map[string]interface{}{
		"symbol":     fin.Symbol,
		"sector":     fin.Sector,
		"composite":  scores.Composite,
		"health":     health.OverallScore,
		"action":     action,
		"confidence": confidence,
	}).Debug("Computed fundamental snapshot")

	return snapshot, nil
}

// Score converts a snapshot into a 0-100 fundamental score for blending
func (e *Engine) Score(snapshot *contracts.FundamentalSnapshot) float64 {
	return snapshot.Scores.Composite
}

// collectRatios gathers the per-company ratio map. Missing fields stay
// nil so callers can tell "absent" from "zero".
func collectRatios(fin *contracts.CompanyFinancials) map[string]*float64 {
	return map[string]*float64{
		"pe":                   fin.PERatio,
		"forward_pe":           fin.ForwardPE,
		"pb":                   fin.PBRatio,
		"ps":                   fin.PSRatio,
		"peg":                  fin.PEGRatio,
		"ev_to_ebitda":         fin.EVToEBITDA,
		"eps":                  fin.EPS,
		"gross_margin":         fin.GrossMargin,
		"operating_margin":     fin.OperatingMargin,
		"profit_margin":        fin.ProfitMargin,
		"roe":                  fin.ROE,
		"roa":                  fin.ROA,
		"current_ratio":        fin.CurrentRatio,
		"quick_ratio":          fin.QuickRatio,
		"cash_ratio":           fin.CashRatio,
		"debt_to_equity":       fin.DebtToEquity,
		"debt_ratio":           fin.DebtRatio,
		"interest_coverage":    fin.InterestCoverage,
		"asset_turnover":       fin.AssetTurnover,
		"inventory_turnover":   fin.InventoryTurnover,
		"receivables_turnover": fin.ReceivablesTurnover,
		"dividend_yield":       fin.DividendYield,
		"payout_ratio":         fin.PayoutRatio,
	}
}

// collectGrowth gathers growth percentages plus their simple averages
// over present values
func collectGrowth(fin *contracts.CompanyFinancials) map[string]*float64 {
	return map[string]*float64{
		"revenue_1y":   fin.RevenueGrowth1Y,
		"revenue_3y":   fin.RevenueGrowth3Y,
		"revenue_5y":   fin.RevenueGrowth5Y,
		"revenue_avg":  AverageNonNil(fin.RevenueGrowth1Y, fin.RevenueGrowth3Y, fin.RevenueGrowth5Y),
		"earnings_1y":  fin.EarningsGrowth1Y,
		"earnings_3y":  fin.EarningsGrowth3Y,
		"earnings_5y":  fin.EarningsGrowth5Y,
		"earnings_avg": AverageNonNil(fin.EarningsGrowth1Y, fin.EarningsGrowth3Y, fin.EarningsGrowth5Y),
		"book_value":   fin.BookValueGrowth,
		"dividend":     fin.DividendGrowth,
	}
}
