package technical

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when a series is too short for an
// indicator. The engine maps it to a nil value plus the
// insufficient_data signal; it never fails a whole snapshot.
var ErrInsufficientData = errors.New("insufficient data for indicator")

// SMA computes the simple moving average series over the given period.
// The result has len(values)-period+1 entries, one per full window.
func SMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(values) < period {
		return nil, ErrInsufficientData
	}

	result := make([]float64, 0, len(values)-period+1)

	var windowSum float64
	for i, v := range values {
		windowSum += v
		if i >= period {
			windowSum -= values[i-period]
		}
		if i >= period-1 {
			result = append(result, windowSum/float64(period))
		}
	}

	return result, nil
}

// LastSMA returns the most recent SMA value
func LastSMA(values []float64, period int) (float64, error) {
	series, err := SMA(values, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// EMA computes the exponential moving average series. The first value
// is seeded with the SMA of the first period entries.
func EMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(values) < period {
		return nil, ErrInsufficientData
	}

	multiplier := 2.0 / (float64(period) + 1.0)

	var seed float64
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	seed /= float64(period)

	result := make([]float64, 0, len(values)-period+1)
	result = append(result, seed)

	ema := seed
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		result = append(result, ema)
	}

	return result, nil
}

// LastEMA returns the most recent EMA value
func LastEMA(values []float64, period int) (float64, error) {
	series, err := EMA(values, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// RSI computes the relative strength index from the trailing window of
// average gains and losses. Requires at least period+1 closes.
// The result is bounded to [0, 100].
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	var gains, losses float64
	start := len(closes) - period
	for i := start; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}

	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// MACDResult holds the three MACD outputs
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes the moving average convergence divergence: the fast/slow
// EMA difference, a signal EMA of that difference, and the histogram.
// Requires at least slow+signal closes.
func MACD(closes []float64, fast, slow, signal int) (*MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return nil, errors.New("invalid MACD periods")
	}
	if len(closes) < slow+signal {
		return nil, ErrInsufficientData
	}

	fastEMA, err := EMA(closes, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMA(closes, slow)
	if err != nil {
		return nil, err
	}

	// Align the two EMA series on their tails; the slow series is shorter
	offset := len(fastEMA) - len(slowEMA)
	macdLine := make([]float64, len(slowEMA))
	for i := range slowEMA {
		macdLine[i] = fastEMA[i+offset] - slowEMA[i]
	}

	signalLine, err := EMA(macdLine, signal)
	if err != nil {
		return nil, err
	}

	macd := macdLine[len(macdLine)-1]
	sig := signalLine[len(signalLine)-1]

	return &MACDResult{
		MACD:      macd,
		Signal:    sig,
		Histogram: macd - sig,
	}, nil
}

// BollingerResult holds the three band values
type BollingerResult struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger computes Bollinger Bands: middle = SMA(period), upper/lower
// = middle +/- k standard deviations. Upper > middle > lower whenever
// the window has any variance.
func Bollinger(closes []float64, period int, k float64) (*BollingerResult, error) {
	middle, err := LastSMA(closes, period)
	if err != nil {
		return nil, err
	}

	window := closes[len(closes)-period:]
	var variance float64
	for _, v := range window {
		diff := v - middle
		variance += diff * diff
	}
	stddev := math.Sqrt(variance / float64(period))

	return &BollingerResult{
		Upper:  middle + k*stddev,
		Middle: middle,
		Lower:  middle - k*stddev,
	}, nil
}

// StdDev computes the population standard deviation
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}

	return math.Sqrt(variance / float64(len(values)))
}
