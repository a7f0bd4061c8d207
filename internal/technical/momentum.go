package technical

import (
	"errors"
	"math"
)

// ROC computes the rate of change (percent) over the given period
func ROC(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	current := closes[len(closes)-1]
	past := closes[len(closes)-1-period]
	if past == 0 {
		return 0, errors.New("zero reference price")
	}

	return (current - past) / past * 100.0, nil
}

// StochasticResult holds the %K and %D oscillator values
type StochasticResult struct {
	K float64 // 0-100
	D float64 // 0-100
}

// Stochastic computes the stochastic oscillator: %K from the position
// of the close within the period's high/low range, %D as a 3-bar SMA
// of %K. Both bounded to [0, 100].
func Stochastic(highs, lows, closes []float64, period int) (*StochasticResult, error) {
	// Need period+2 bars for the three %K readings behind %D
	if len(closes) < period+2 || len(highs) != len(closes) || len(lows) != len(closes) {
		return nil, ErrInsufficientData
	}

	kAt := func(end int) float64 {
		hh := highs[end-period+1]
		ll := lows[end-period+1]
		for i := end - period + 2; i <= end; i++ {
			hh = math.Max(hh, highs[i])
			ll = math.Min(ll, lows[i])
		}
		if hh == ll {
			return 50.0
		}
		return (closes[end] - ll) / (hh - ll) * 100.0
	}

	last := len(closes) - 1
	k := kAt(last)
	d := (kAt(last) + kAt(last-1) + kAt(last-2)) / 3.0

	return &StochasticResult{K: k, D: d}, nil
}

// WilliamsR computes Williams %R, bounded to [-100, 0]
func WilliamsR(highs, lows, closes []float64, period int) (float64, error) {
	if len(closes) < period || len(highs) != len(closes) || len(lows) != len(closes) {
		return 0, ErrInsufficientData
	}

	start := len(closes) - period
	hh := highs[start]
	ll := lows[start]
	for i := start + 1; i < len(closes); i++ {
		hh = math.Max(hh, highs[i])
		ll = math.Min(ll, lows[i])
	}

	if hh == ll {
		return -50.0, nil
	}

	return (hh - closes[len(closes)-1]) / (hh - ll) * -100.0, nil
}

// CCI computes the commodity channel index over typical prices.
// Unbounded; conventional overbought/oversold bands sit at +/-100.
func CCI(highs, lows, closes []float64, period int) (float64, error) {
	if len(closes) < period || len(highs) != len(closes) || len(lows) != len(closes) {
		return 0, ErrInsufficientData
	}

	start := len(closes) - period
	typical := make([]float64, period)
	var sum float64
	for i := 0; i < period; i++ {
		tp := (highs[start+i] + lows[start+i] + closes[start+i]) / 3.0
		typical[i] = tp
		sum += tp
	}
	mean := sum / float64(period)

	var meanDev float64
	for _, tp := range typical {
		meanDev += math.Abs(tp - mean)
	}
	meanDev /= float64(period)

	if meanDev == 0 {
		return 0, nil
	}

	current := typical[period-1]
	return (current - mean) / (0.015 * meanDev), nil
}
