package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/logger"
)

func ptr(v float64) *float64 { return &v }

func testBench() contracts.SectorBenchmark {
	return contracts.SectorBenchmark{
		AvgPE:            20,
		AvgPB:            3,
		AvgPS:            2.5,
		AvgROE:           14,
		AvgDebtEquity:    1.0,
		AvgRevenueGrowth: 6,
		AvgProfitMargin:  12,
	}
}

func strongCompany() *contracts.CompanyFinancials {
	return &contracts.CompanyFinancials{
		Symbol: "MSFT",
		Sector: "Technology",

		PERatio:       ptr(12),
		PBRatio:       ptr(1.8),
		PSRatio:       ptr(1.2),
		DividendYield: ptr(3.0),

		ROE:              ptr(28),
		ProfitMargin:     ptr(22),
		DebtToEquity:     ptr(0.4),
		InterestCoverage: ptr(15),
		CurrentRatio:     ptr(2.0),

		RevenueGrowth1Y:  ptr(15),
		RevenueGrowth3Y:  ptr(11),
		RevenueGrowth5Y:  ptr(12),
		EarningsGrowth1Y: ptr(25),
		EarningsGrowth3Y: ptr(14),
		ForwardPE:        ptr(10),

		RevenueHistory: []float64{100, 112, 125, 140, 158},
		ProfitHistory:  []float64{20, 23, 26, 30, 34},
		ROEHistory:     []float64{24, 25, 26, 27, 28},
	}
}

func TestAnalyzeStrongCompany(t *testing.T) {
	e := NewEngineWithBenchmarks(map[string]contracts.SectorBenchmark{
		contracts.GenericSector: testBench(),
	}, logger.NewNop())

	analysis, err := e.Analyze(strongCompany())
	require.NoError(t, err)

	assert.Equal(t, "MSFT", analysis.Symbol)
	assert.Greater(t, analysis.QualityScore, 70.0)
	assert.Contains(t, []contracts.QualityGrade{contracts.GradeGood, contracts.GradeExcellent}, analysis.QualityGrade)

	// Cheap on every comparable ratio
	assert.Contains(t, []contracts.Verdict{
		contracts.VerdictUndervalued,
		contracts.VerdictDeeplyUndervalued,
	}, analysis.Evaluation.Verdict)

	assert.Equal(t, contracts.TrendImproving, analysis.FinancialTrends[TrendRevenue].Direction)
	assert.Equal(t, contracts.TrendImproving, analysis.FinancialTrends[TrendOverall].Direction)

	assert.Equal(t, contracts.RiskLow, analysis.Risk.OverallRisk)
	assert.Empty(t, analysis.Risk.Factors)

	assert.GreaterOrEqual(t, analysis.SectorComparison.OverallPct, 60.0)
}

func TestAnalyzeDistressedCompany(t *testing.T) {
	e := NewEngineWithBenchmarks(map[string]contracts.SectorBenchmark{
		contracts.GenericSector: testBench(),
	}, logger.NewNop())

	fin := &contracts.CompanyFinancials{
		Symbol:          "RISK",
		PERatio:         ptr(45),
		PBRatio:         ptr(6),
		ROE:             ptr(2),
		ProfitMargin:    ptr(1),
		DebtToEquity:    ptr(3.0),
		CurrentRatio:    ptr(0.7),
		RevenueGrowth1Y: ptr(-12),
		RevenueHistory:  []float64{200, 180, 160, 140, 120},
	}

	analysis, err := e.Analyze(fin)
	require.NoError(t, err)

	assert.Less(t, analysis.QualityScore, 50.0)
	assert.Equal(t, contracts.GradePoor, analysis.QualityGrade)
	assert.Equal(t, contracts.RiskHigh, analysis.Risk.OverallRisk)
	assert.Len(t, analysis.Risk.Factors, 5)
	assert.Equal(t, contracts.TrendDeclining, analysis.FinancialTrends[TrendRevenue].Direction)
	assert.Equal(t, contracts.VerdictSeverelyOvervalued, analysis.Evaluation.Verdict)
	assert.Equal(t, contracts.ConfidenceHigh, analysis.Evaluation.Confidence)
}

func TestAnalyzeEmptyFinancials(t *testing.T) {
	e := NewEngine(logger.NewNop())

	analysis, err := e.Analyze(&contracts.CompanyFinancials{Symbol: "EMPTY"})
	require.NoError(t, err)

	// Every dimension sits at its neutral base
	assert.InDelta(t, 50.0, analysis.QualityScore, 1e-9)
	assert.Equal(t, contracts.GradeAverage, analysis.QualityGrade)
	assert.Equal(t, contracts.VerdictFairlyValued, analysis.Evaluation.Verdict)
	assert.Equal(t, contracts.ConfidenceLow, analysis.Evaluation.Confidence)
	assert.Equal(t, contracts.TrendUnknown, analysis.FinancialTrends[TrendOverall].Direction)
	assert.InDelta(t, 50.0, analysis.SectorComparison.OverallPct, 1e-9)
}

func TestAnalyzeNilInput(t *testing.T) {
	_, err := NewEngine(logger.NewNop()).Analyze(nil)
	assert.Error(t, err)
}

func TestScoreReturnsComposite(t *testing.T) {
	e := NewEngine(logger.NewNop())
	analysis, err := e.Analyze(strongCompany())
	require.NoError(t, err)
	assert.Equal(t, analysis.QualityScore, e.Score(analysis))
}
