package quality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/advisor/internal/contracts"
)

func TestAnalyzeTrendDirections(t *testing.T) {
	improving := analyzeTrend([]float64{1, 2, 3, 4, 5, 6})
	assert.Equal(t, contracts.TrendImproving, improving.Direction)
	assert.Equal(t, contracts.TrendStrengthHigh, improving.Strength)
	assert.InDelta(t, 1.0/3.5, improving.RelativeSlope, 1e-9)

	declining := analyzeTrend([]float64{6, 5, 4, 3, 2, 1})
	assert.Equal(t, contracts.TrendDeclining, declining.Direction)
	assert.Equal(t, contracts.TrendStrengthHigh, declining.Strength)

	stable := analyzeTrend([]float64{3, 3, 3, 3, 3, 3})
	assert.Equal(t, contracts.TrendStable, stable.Direction)
	assert.InDelta(t, 0.0, stable.RelativeSlope, 1e-9)
}

func TestAnalyzeTrendInsufficientPoints(t *testing.T) {
	assert.Equal(t, contracts.TrendUnknown, analyzeTrend([]float64{1, 2}).Direction)
	assert.Equal(t, contracts.TrendUnknown, analyzeTrend(nil).Direction)
}

func TestAnalyzeTrendStrengthBands(t *testing.T) {
	// Gentle slope inside the medium band
	medium := analyzeTrend([]float64{100, 102, 104, 106, 108})
	// slope 2, mean 104, relative ~0.019: stable and low strength
	assert.Equal(t, contracts.TrendStable, medium.Direction)
	assert.Equal(t, contracts.TrendStrengthLow, medium.Strength)

	strong := analyzeTrend([]float64{10, 20, 30, 40, 50})
	assert.Equal(t, contracts.TrendImproving, strong.Direction)
	assert.Equal(t, contracts.TrendStrengthHigh, strong.Strength)
}

func TestOverallTrendMajorityVote(t *testing.T) {
	trends := map[string]contracts.MetricTrend{
		TrendRevenue: {Direction: contracts.TrendImproving, Strength: contracts.TrendStrengthHigh, RelativeSlope: 0.3},
		TrendProfit:  {Direction: contracts.TrendImproving, Strength: contracts.TrendStrengthLow, RelativeSlope: 0.12},
		TrendROE:     {Direction: contracts.TrendDeclining, Strength: contracts.TrendStrengthMedium, RelativeSlope: -0.15},
	}

	overall := overallTrend(trends)
	assert.Equal(t, contracts.TrendImproving, overall.Direction)
	assert.Equal(t, contracts.TrendStrengthHigh, overall.Strength)
}

func TestOverallTrendAllUnknown(t *testing.T) {
	trends := map[string]contracts.MetricTrend{
		TrendRevenue: {Direction: contracts.TrendUnknown},
		TrendProfit:  {Direction: contracts.TrendUnknown},
	}
	assert.Equal(t, contracts.TrendUnknown, overallTrend(trends).Direction)
}

func TestOverallTrendTieIsStable(t *testing.T) {
	trends := map[string]contracts.MetricTrend{
		TrendRevenue: {Direction: contracts.TrendImproving, RelativeSlope: 0.2},
		TrendProfit:  {Direction: contracts.TrendDeclining, RelativeSlope: -0.2},
	}
	assert.Equal(t, contracts.TrendStable, overallTrend(trends).Direction)
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.InDelta(t, 0.0, coefficientOfVariation([]float64{5, 5, 5, 5}), 1e-9)
	assert.Greater(t, coefficientOfVariation([]float64{1, 10, 1, 10}), 0.5)
	assert.True(t, math.IsInf(coefficientOfVariation([]float64{-1, 1}), 1))
}
