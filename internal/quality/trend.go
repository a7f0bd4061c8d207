package quality

import (
	"math"

	"github.com/wonny/advisor/internal/contracts"
)

// Relative-slope bands for trend direction and strength
const (
	trendDirectionBand = 0.1
	trendStrongBand    = 0.2
	trendMediumBand    = 0.1
)

// analyzeTrend fits an ordinary least-squares line to a historical
// series and normalizes the slope by the series mean so trends compare
// across metrics of different scale. Needs at least 3 points,
// otherwise the direction is Unknown.
func analyzeTrend(values []float64) contracts.MetricTrend {
	if len(values) < 3 {
		return contracts.MetricTrend{
			Direction: contracts.TrendUnknown,
			Strength:  contracts.TrendStrengthLow,
		}
	}

	slope, mean := olsSlope(values)

	var relative float64
	if mean != 0 {
		relative = slope / math.Abs(mean)
	}

	direction := contracts.TrendStable
	switch {
	case relative > trendDirectionBand:
		direction = contracts.TrendImproving
	case relative < -trendDirectionBand:
		direction = contracts.TrendDeclining
	}

	strength := contracts.TrendStrengthLow
	switch {
	case math.Abs(relative) > trendStrongBand:
		strength = contracts.TrendStrengthHigh
	case math.Abs(relative) > trendMediumBand:
		strength = contracts.TrendStrengthMedium
	}

	return contracts.MetricTrend{
		Direction:     direction,
		Strength:      strength,
		RelativeSlope: relative,
	}
}

// olsSlope returns the least-squares slope over index positions and
// the series mean
func olsSlope(values []float64) (slope, mean float64) {
	n := float64(len(values))

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	mean = sumY / n
	return slope, mean
}

// overallTrend aggregates per-metric trends into one direction by
// majority vote, with ties falling to Stable. Unknown trends do not
// vote. Strength carries the strongest observed band.
func overallTrend(trends map[string]contracts.MetricTrend) contracts.MetricTrend {
	var improving, declining, known int
	var sumRelative float64
	strength := contracts.TrendStrengthLow

	for _, t := range trends {
		if t.Direction == contracts.TrendUnknown {
			continue
		}
		known++
		sumRelative += t.RelativeSlope
		switch t.Direction {
		case contracts.TrendImproving:
			improving++
		case contracts.TrendDeclining:
			declining++
		}
		if rankStrength(t.Strength) > rankStrength(strength) {
			strength = t.Strength
		}
	}

	if known == 0 {
		return contracts.MetricTrend{
			Direction: contracts.TrendUnknown,
			Strength:  contracts.TrendStrengthLow,
		}
	}

	direction := contracts.TrendStable
	switch {
	case improving > declining:
		direction = contracts.TrendImproving
	case declining > improving:
		direction = contracts.TrendDeclining
	}

	return contracts.MetricTrend{
		Direction:     direction,
		Strength:      strength,
		RelativeSlope: sumRelative / float64(known),
	}
}

func rankStrength(s contracts.TrendStrength) int {
	switch s {
	case contracts.TrendStrengthHigh:
		return 2
	case contracts.TrendStrengthMedium:
		return 1
	default:
		return 0
	}
}

// coefficientOfVariation measures relative dispersion of a series;
// zero mean returns a large sentinel so it scores as unstable
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if mean == 0 {
		return math.Inf(1)
	}

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))

	return math.Sqrt(variance) / math.Abs(mean)
}
