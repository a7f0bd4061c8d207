package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oscFixture(n int) (highs, lows, closes []float64) {
	highs = make([]float64, n)
	lows = make([]float64, n)
	closes = make([]float64, n)
	for i := 0; i < n; i++ {
		base := 100.0 + float64(i%7) - float64(i%3)
		closes[i] = base
		highs[i] = base + 2
		lows[i] = base - 2
	}
	return highs, lows, closes
}

func TestROC(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110}

	roc, err := ROC(closes, 10)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, roc, 1e-9)
}

func TestROC_InsufficientData(t *testing.T) {
	_, err := ROC([]float64{100, 101}, 10)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestStochastic_Bounds(t *testing.T) {
	highs, lows, closes := oscFixture(40)

	stoch, err := Stochastic(highs, lows, closes, 14)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, stoch.K, 0.0)
	assert.LessOrEqual(t, stoch.K, 100.0)
	assert.GreaterOrEqual(t, stoch.D, 0.0)
	assert.LessOrEqual(t, stoch.D, 100.0)
}

func TestStochastic_CloseAtRangeTop(t *testing.T) {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i] = 110
		lows[i] = 90
		closes[i] = 100
	}
	closes[n-1] = 110 // close at the period high

	stoch, err := Stochastic(highs, lows, closes, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stoch.K)
}

func TestWilliamsR_Bounds(t *testing.T) {
	highs, lows, closes := oscFixture(40)

	wr, err := WilliamsR(highs, lows, closes, 14)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, wr, -100.0)
	assert.LessOrEqual(t, wr, 0.0)
}

func TestWilliamsR_FlatRange(t *testing.T) {
	n := 20
	flat := make([]float64, n)
	for i := range flat {
		flat[i] = 100
	}

	wr, err := WilliamsR(flat, flat, flat, 14)
	require.NoError(t, err)
	assert.Equal(t, -50.0, wr)
}

func TestCCI(t *testing.T) {
	highs, lows, closes := oscFixture(40)

	_, err := CCI(highs, lows, closes, 20)
	require.NoError(t, err)

	// A strong upside breakout pushes CCI above the +100 band
	n := 30
	bh := make([]float64, n)
	bl := make([]float64, n)
	bc := make([]float64, n)
	for i := 0; i < n; i++ {
		bh[i], bl[i], bc[i] = 101, 99, 100
	}
	bh[n-1], bl[n-1], bc[n-1] = 121, 115, 120

	cci, err := CCI(bh, bl, bc, 20)
	require.NoError(t, err)
	assert.Greater(t, cci, 100.0)
}

func TestCCI_InsufficientData(t *testing.T) {
	highs, lows, closes := oscFixture(10)
	_, err := CCI(highs, lows, closes, 20)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
