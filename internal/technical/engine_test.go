package technical

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/logger"
)

// makeSeries builds a synthetic OHLCV series of n bars where the close
// follows gen(i)
func makeSeries(n int, gen func(i int) float64) *contracts.OHLCVSeries {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := make([]contracts.Candle, n)
	for i := 0; i < n; i++ {
		close := gen(i)
		candles[i] = contracts.Candle{
			Timestamp: start.AddDate(0, 0, i),
			Open:      close - 0.5,
			High:      close + 1.5,
			Low:       close - 1.5,
			Close:     close,
			Volume:    1_000_000 + int64(i)*10_000,
		}
	}
	return &contracts.OHLCVSeries{Symbol: "TEST", Candles: candles}
}

func TestEngine_Analyze_FullSeries(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	series := makeSeries(120, func(i int) float64 {
		return 100 + float64(i)*0.5
	})

	snapshot, err := engine.Analyze(series)
	require.NoError(t, err)

	// All indicators computed for a 120-bar series
	for _, name := range []string{IndRSI, IndMACD, IndSMA20, IndSMA50, IndBBUpper, IndStochK, IndWilliamsR, IndCCI, IndVolumeRatio} {
		v, ok := snapshot.Indicator(name)
		assert.True(t, ok, "indicator %s should be present", name)
		assert.False(t, math.IsNaN(v), "indicator %s is NaN", name)
	}

	// Bound invariants
	rsi, _ := snapshot.Indicator(IndRSI)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)

	upper, _ := snapshot.Indicator(IndBBUpper)
	middle, _ := snapshot.Indicator(IndBBMiddle)
	lower, _ := snapshot.Indicator(IndBBLower)
	assert.Greater(t, upper, middle)
	assert.Greater(t, middle, lower)

	wr, _ := snapshot.Indicator(IndWilliamsR)
	assert.GreaterOrEqual(t, wr, -100.0)
	assert.LessOrEqual(t, wr, 0.0)

	assert.GreaterOrEqual(t, snapshot.Strength, 0.0)
	assert.LessOrEqual(t, snapshot.Strength, 100.0)

	// A rising series reads bullish overall even though the bounded
	// oscillators sit overbought
	assert.Equal(t, contracts.TrendBullish, snapshot.Trend)
	assert.Greater(t, snapshot.Strength, 50.0)
}

func TestEngine_Analyze_SustainedDowntrendReadsBearish(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	series := makeSeries(120, func(i int) float64 {
		return 200 - float64(i)*0.5
	})

	snapshot, err := engine.Analyze(series)
	require.NoError(t, err)

	assert.Equal(t, contracts.TrendBearish, snapshot.Trend)
	assert.Less(t, snapshot.Strength, 50.0)
}

func TestEngine_Analyze_ShortSeries_IsolatesFailures(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	// 10 bars: enough for nothing beyond short ROC lookbacks
	series := makeSeries(10, func(i int) float64 { return 100 + float64(i) })

	snapshot, err := engine.Analyze(series)
	require.NoError(t, err)

	// Insufficient indicators are nil with insufficient_data signals,
	// not errors
	for _, name := range []string{IndRSI, IndMACD, IndSMA20, IndSMA50, IndStochK, IndCCI} {
		_, ok := snapshot.Indicator(name)
		assert.False(t, ok, "indicator %s should be missing", name)
		assert.Equal(t, contracts.SignalInsufficientData, snapshot.SignalFor(name))
	}
}

func TestEngine_Analyze_EmptySeries(t *testing.T) {
	engine := NewEngine(logger.NewNop())

	_, err := engine.Analyze(&contracts.OHLCVSeries{Symbol: "TEST"})
	assert.Error(t, err)

	_, err = engine.Analyze(nil)
	assert.Error(t, err)
}

func TestEngine_Analyze_Idempotent(t *testing.T) {
	engine := NewEngine(logger.NewNop())
	series := makeSeries(90, func(i int) float64 {
		return 50 + 5*math.Sin(float64(i)/7) + float64(i)*0.1
	})

	first, err := engine.Analyze(series)
	require.NoError(t, err)
	second, err := engine.Analyze(series)
	require.NoError(t, err)

	assert.Equal(t, first.Trend, second.Trend)
	assert.Equal(t, first.Strength, second.Strength)
	assert.Equal(t, first.Support, second.Support)
	assert.Equal(t, first.Resistance, second.Resistance)
	for name, v := range first.Indicators {
		if v == nil {
			assert.Nil(t, second.Indicators[name])
			continue
		}
		require.NotNil(t, second.Indicators[name], "indicator %s", name)
		assert.Equal(t, *v, *second.Indicators[name], "indicator %s", name)
	}
}

func TestAggregateSignals_OverboughtDoesNotOutvoteTrend(t *testing.T) {
	// A strong uptrend saturates every bounded oscillator. The
	// mean-reversion votes must not flip the aggregate bearish.
	signals := map[string]contracts.Signal{
		IndMACD:        contracts.SignalBullish,
		IndSMA20:       contracts.SignalBullish,
		IndSMA50:       contracts.SignalBullish,
		IndROC:         contracts.SignalBullish,
		IndRSI:         contracts.SignalOverbought,
		IndBBMiddle:    contracts.SignalOverbought,
		IndStochK:      contracts.SignalOverbought,
		IndWilliamsR:   contracts.SignalOverbought,
		IndCCI:         contracts.SignalOverbought,
		IndVolumeRatio: contracts.SignalBullish,
	}

	trend, strength := aggregateSignals(signals)
	assert.Equal(t, contracts.TrendBullish, trend)
	assert.Greater(t, strength, 50.0)
}

func TestAggregateSignals_OversoldDoesNotOutvoteDowntrend(t *testing.T) {
	signals := map[string]contracts.Signal{
		IndMACD:      contracts.SignalBearish,
		IndSMA20:     contracts.SignalBearish,
		IndSMA50:     contracts.SignalBearish,
		IndROC:       contracts.SignalBearish,
		IndRSI:       contracts.SignalOversold,
		IndStochK:    contracts.SignalOversold,
		IndWilliamsR: contracts.SignalOversold,
		IndCCI:       contracts.SignalOversold,
	}

	trend, strength := aggregateSignals(signals)
	assert.Equal(t, contracts.TrendBearish, trend)
	assert.Less(t, strength, 50.0)
}

func TestPriceVsLevel(t *testing.T) {
	assert.Equal(t, contracts.SignalBullish, priceVsLevel(103, 100))
	assert.Equal(t, contracts.SignalBearish, priceVsLevel(97, 100))
	assert.Equal(t, contracts.SignalNeutral, priceVsLevel(100.5, 100))
	assert.Equal(t, contracts.SignalNeutral, priceVsLevel(99.5, 100))
	assert.Equal(t, contracts.SignalNeutral, priceVsLevel(100, 0))
}

func TestAggregateSignals_TieIsNeutral(t *testing.T) {
	signals := map[string]contracts.Signal{
		"a": contracts.SignalBullish,
		"b": contracts.SignalBearish,
		"c": contracts.SignalNeutral,
	}

	trend, strength := aggregateSignals(signals)
	assert.Equal(t, contracts.TrendNeutral, trend)
	assert.Equal(t, 50.0, strength)
}

func TestAggregateSignals_SkipsMissing(t *testing.T) {
	signals := map[string]contracts.Signal{
		"a": contracts.SignalBullish,
		"b": contracts.SignalInsufficientData,
		"c": contracts.SignalInsufficientData,
	}

	trend, strength := aggregateSignals(signals)
	assert.Equal(t, contracts.TrendBullish, trend)
	assert.Equal(t, 100.0, strength)
}

func TestAggregateSignals_Empty(t *testing.T) {
	trend, strength := aggregateSignals(map[string]contracts.Signal{})
	assert.Equal(t, contracts.TrendNeutral, trend)
	assert.Equal(t, 50.0, strength)
}
