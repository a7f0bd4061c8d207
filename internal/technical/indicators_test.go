package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	result, err := SMA(values, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, result)
}

func TestSMA_InsufficientData(t *testing.T) {
	_, err := SMA([]float64{1, 2}, 3)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = SMA([]float64{1, 2, 3}, 0)
	assert.Error(t, err)
}

func TestLastSMA(t *testing.T) {
	got, err := LastSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)
}

func TestEMA(t *testing.T) {
	values := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

	result, err := EMA(values, 5)
	require.NoError(t, err)
	require.Len(t, result, 6)

	// First value is the SMA seed
	assert.Equal(t, 12.0, result[0])

	// EMA of a rising series rises
	for i := 1; i < len(result); i++ {
		assert.Greater(t, result[i], result[i-1])
	}
}

func TestRSI_Bounds(t *testing.T) {
	// Monotonically rising closes: no losses, RSI pegged at 100
	rising := make([]float64, 30)
	for i := range rising {
		rising[i] = 100 + float64(i)
	}
	rsi, err := RSI(rising, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)

	// Monotonically falling closes: no gains, RSI at 0
	falling := make([]float64, 30)
	for i := range falling {
		falling[i] = 200 - float64(i)
	}
	rsi, err = RSI(falling, 14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rsi)

	// Mixed series stays inside [0, 100]
	mixed := []float64{100, 102, 99, 103, 98, 104, 97, 105, 101, 100, 102, 99, 103, 98, 104, 101}
	rsi, err = RSI(mixed, 14)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)
}

func TestRSI_RequiresPeriodPlusOne(t *testing.T) {
	closes := make([]float64, 14)
	_, err := RSI(closes, 14)
	assert.ErrorIs(t, err, ErrInsufficientData)

	closes = make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}
	_, err = RSI(closes, 14)
	assert.NoError(t, err)
}

func TestMACD(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}

	result, err := MACD(closes, 12, 26, 9)
	require.NoError(t, err)

	// Rising series: fast EMA above slow EMA
	assert.Greater(t, result.MACD, 0.0)
	assert.InDelta(t, result.MACD-result.Signal, result.Histogram, 1e-12)
}

func TestMACD_InsufficientData(t *testing.T) {
	closes := make([]float64, 30) // < slow+signal = 35
	_, err := MACD(closes, 12, 26, 9)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMACD_InvalidPeriods(t *testing.T) {
	closes := make([]float64, 60)
	_, err := MACD(closes, 26, 12, 9)
	assert.Error(t, err)
}

func TestBollinger_Ordering(t *testing.T) {
	closes := []float64{100, 102, 98, 103, 97, 104, 96, 105, 99, 101,
		100, 102, 98, 103, 97, 104, 96, 105, 99, 101}

	bb, err := Bollinger(closes, 20, 2.0)
	require.NoError(t, err)

	assert.Greater(t, bb.Upper, bb.Middle)
	assert.Greater(t, bb.Middle, bb.Lower)
}

func TestBollinger_InsufficientData(t *testing.T) {
	_, err := Bollinger([]float64{100, 101}, 20, 2.0)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5, 5, 5}))
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}
