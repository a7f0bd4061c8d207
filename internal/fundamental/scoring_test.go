package fundamental

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/advisor/internal/contracts"
)

func benchTech() contracts.SectorBenchmark {
	return contracts.SectorBenchmark{
		AvgPE:            25,
		AvgPB:            5,
		AvgPS:            4,
		AvgROE:           18,
		AvgDebtEquity:    0.8,
		AvgRevenueGrowth: 12,
		AvgProfitMargin:  15,
	}
}

func TestRelativeDelta(t *testing.T) {
	assert.InDelta(t, 20.0, relativeDelta(14, 25, 20), 1e-9)  // deep discount
	assert.InDelta(t, 10.0, relativeDelta(20, 25, 20), 1e-9)  // mild discount
	assert.InDelta(t, 0.0, relativeDelta(25, 25, 20), 1e-9)   // in line
	assert.InDelta(t, -10.0, relativeDelta(31, 25, 20), 1e-9) // mild premium
	assert.InDelta(t, -20.0, relativeDelta(40, 25, 20), 1e-9) // steep premium
	assert.InDelta(t, 0.0, relativeDelta(14, 0, 20), 1e-9)    // no benchmark
}

func TestValueScoreDiscountedStock(t *testing.T) {
	fin := &contracts.CompanyFinancials{
		PERatio:       ptr(14), // 0.56x sector
		PBRatio:       ptr(3),  // 0.6x sector
		PSRatio:       ptr(2),  // 0.5x sector
		DividendYield: ptr(3.5),
	}

	score := valueScore(fin, benchTech())
	require.NotNil(t, score)
	// 50 + 20 + 15 + 10 + 5 = 100
	assert.InDelta(t, 100.0, *score, 1e-9)
}

func TestValueScoreNilWithoutRatios(t *testing.T) {
	assert.Nil(t, valueScore(&contracts.CompanyFinancials{}, benchTech()))
	assert.Nil(t, valueScore(&contracts.CompanyFinancials{ROE: ptr(20)}, benchTech()))
}

func TestGrowthScoreSectorRelativeBonus(t *testing.T) {
	// Well above 1.5x the sector average of 12 and above the absolute
	// 20 band
	fin := &contracts.CompanyFinancials{RevenueGrowth1Y: ptr(25)}

	score := growthScore(fin, benchTech())
	require.NotNil(t, score)
	assert.InDelta(t, 50.0+15.0+15.0, *score, 1e-9)
}

func TestGrowthScoreDecline(t *testing.T) {
	fin := &contracts.CompanyFinancials{
		RevenueGrowth1Y:  ptr(-20),
		EarningsGrowth1Y: ptr(-30),
	}

	score := growthScore(fin, benchTech())
	require.NotNil(t, score)
	assert.InDelta(t, 50.0-15.0-15.0, *score, 1e-9)
}

func TestQualityScoreBands(t *testing.T) {
	strong := &contracts.CompanyFinancials{
		ROE:             ptr(25),
		ProfitMargin:    ptr(20),
		OperatingMargin: ptr(25),
		DebtToEquity:    ptr(0.3),
	}
	score := qualityScore(strong)
	require.NotNil(t, score)
	assert.InDelta(t, 50.0+20+10+5+10, *score, 1e-9)

	weak := &contracts.CompanyFinancials{
		ROE:          ptr(-5),
		ProfitMargin: ptr(-2),
		DebtToEquity: ptr(3.0),
	}
	score = qualityScore(weak)
	require.NotNil(t, score)
	assert.InDelta(t, 50.0-20-15-10, *score, 1e-9)

	assert.Nil(t, qualityScore(&contracts.CompanyFinancials{}))
}

func TestMomentumScoreAcceleration(t *testing.T) {
	fin := &contracts.CompanyFinancials{
		RevenueGrowth1Y:  ptr(20),
		RevenueGrowth3Y:  ptr(10),
		EarningsGrowth1Y: ptr(30),
		EarningsGrowth3Y: ptr(12),
		PERatio:          ptr(25),
		ForwardPE:        ptr(20),
	}

	score := momentumScore(fin)
	require.NotNil(t, score)
	assert.InDelta(t, 50.0+15+15+10, *score, 1e-9)

	assert.Nil(t, momentumScore(&contracts.CompanyFinancials{}))
}

func TestFactorScoresRenormalizesMissing(t *testing.T) {
	// Only quality inputs present: composite equals the quality score
	fin := &contracts.CompanyFinancials{ROE: ptr(25), ProfitMargin: ptr(20)}

	scores := factorScores(fin, benchTech())
	require.NotNil(t, scores.Quality)
	assert.Nil(t, scores.Value)
	assert.Nil(t, scores.Momentum)
	assert.InDelta(t, *scores.Quality, scores.Composite, 1e-9)
}

func TestDeriveRecommendationAgreementBonus(t *testing.T) {
	scores := contracts.FactorScores{
		Value:   ptr(80),
		Growth:  ptr(82),
		Quality: ptr(78),
	}
	scores.Composite = scores.CompositeScore()
	health := contracts.FinancialHealth{OverallScore: 75}

	action, confidence := deriveRecommendation(scores, health, 80)

	// Mean of the three views plus both agreement bonuses
	mean := (scores.Composite + 75.0 + 80.0) / 3.0
	assert.InDelta(t, mean+10, confidence, 1e-9)
	assert.Equal(t, contracts.ActionStrongBuy, action)
}

func TestDeriveRecommendationWeak(t *testing.T) {
	scores := contracts.FactorScores{Value: ptr(25), Growth: ptr(60)}
	scores.Composite = scores.CompositeScore()
	health := contracts.FinancialHealth{OverallScore: 30}

	action, confidence := deriveRecommendation(scores, health, 30)
	assert.Less(t, confidence, 45.0)
	assert.NotEqual(t, contracts.ActionBuy, action)
}

func TestComparePeers(t *testing.T) {
	fin := &contracts.CompanyFinancials{
		PERatio:      ptr(14),  // 0.56x, lower-better
		ROE:          ptr(27),  // 1.5x, higher-better
		DebtToEquity: ptr(1.2), // 1.5x, lower-better
	}

	peers := comparePeers(fin, benchTech())
	require.Len(t, peers, 3)

	assert.Equal(t, 90.0, peers[MetricPE].Percentile)
	assert.Equal(t, contracts.AssessExcellent, peers[MetricPE].Assessment)
	assert.Equal(t, 90.0, peers[MetricROE].Percentile)
	assert.Equal(t, 10.0, peers[MetricDebtEquity].Percentile)
	assert.Equal(t, contracts.AssessPoor, peers[MetricDebtEquity].Assessment)

	_, ok := peers[MetricPB]
	assert.False(t, ok, "missing company metric should be skipped")
}

func TestSectorScore(t *testing.T) {
	assert.InDelta(t, 50.0, sectorScore(nil), 1e-9)

	comparison := map[string]contracts.PeerMetric{
		MetricPE:  {Assessment: contracts.AssessExcellent},
		MetricROE: {Assessment: contracts.AssessPoor},
	}
	assert.InDelta(t, (90.0+15.0)/2.0, sectorScore(comparison), 1e-9)
}
