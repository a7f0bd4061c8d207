package quality

import (
	"fmt"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/logger"
)

// Trend metric keys
const (
	TrendRevenue = "revenue"
	TrendProfit  = "profit"
	TrendROE     = "roe"
	TrendOverall = "overall"
)

// Engine computes a QualityAnalysis: five-dimension quality score,
// valuation verdict, regression trends over the multi-year history
// series, sector percentile ranking and a rule-based risk readout.
type Engine struct {
	benchmarks map[string]contracts.SectorBenchmark
	logger     *logger.Logger
}

// NewEngine creates a quality engine with the default sector
// benchmark table
func NewEngine(log *logger.Logger) *Engine {
	return NewEngineWithBenchmarks(contracts.DefaultSectorBenchmarks(), log)
}

// NewEngineWithBenchmarks creates a quality engine with an injected
// benchmark table
func NewEngineWithBenchmarks(benchmarks map[string]contracts.SectorBenchmark, log *logger.Logger) *Engine {
	return &Engine{
		benchmarks: benchmarks,
		logger:     log,
	}
}

// Analyze computes the full quality and trend analysis for one company
func (e *Engine) Analyze(fin *contracts.CompanyFinancials) (*contracts.QualityAnalysis, error) {
	if fin == nil {
		return nil, fmt.Errorf("nil company financials")
	}

	bench := contracts.BenchmarkFor(e.benchmarks, fin.Sector)

	dimensions := scoreDimensions(fin, bench)
	score := dimensions.Composite()

	trends := map[string]contracts.MetricTrend{
		TrendRevenue: analyzeTrend(fin.RevenueHistory),
		TrendProfit:  analyzeTrend(fin.ProfitHistory),
		TrendROE:     analyzeTrend(fin.ROEHistory),
	}
	trends[TrendOverall] = overallTrend(trends)

	analysis := &contracts.QualityAnalysis{
		Symbol:            fin.Symbol,
		QualityDimensions: dimensions,
		QualityScore:      score,
		QualityGrade:      contracts.GradeForScore(score),
		Evaluation:        evaluateValuation(fin, bench),
		FinancialTrends:   trends,
		SectorComparison:  compareAgainstSector(fin, bench),
		Risk:              assessRisk(fin, bench, score),
	}

	e.logger.WithFields(map[string]interface{}{
		"symbol":  fin.Symbol,
		"score":   score,
		"grade":   analysis.QualityGrade,
		"verdict": analysis.Evaluation.Verdict,
		"risk":    analysis.Risk.OverallRisk,
	}).Debug("Computed quality analysis")

	return analysis, nil
}

// Score converts an analysis into a 0-100 quality score for blending
func (e *Engine) Score(analysis *contracts.QualityAnalysis) float64 {
	return analysis.QualityScore
}
