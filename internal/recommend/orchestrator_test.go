package recommend

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/logger"
)

func ptr(v float64) *float64 { return &v }

// fakeProviders implements all three provider contracts with
// per-symbol fixtures. Symbols missing from a map fail that fetch.
type fakeProviders struct {
	prices     map[string]float64
	sentiments map[string]float64
	fin        *contracts.CompanyFinancials
	series     *contracts.OHLCVSeries
	historyErr error
	finErr     error
}

func (f *fakeProviders) GetCurrentPrice(_ context.Context, symbol string) (float64, error) {
	price, ok := f.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no quote for %s", symbol)
	}
	return price, nil
}

func (f *fakeProviders) GetHistory(_ context.Context, symbol string, _ int) (*contracts.OHLCVSeries, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	if f.series == nil {
		return nil, fmt.Errorf("no history for %s", symbol)
	}
	return f.series, nil
}

func (f *fakeProviders) GetCompanyFinancials(_ context.Context, symbol string) (*contracts.CompanyFinancials, error) {
	if f.finErr != nil {
		return nil, f.finErr
	}
	if f.fin == nil {
		return nil, fmt.Errorf("no financials for %s", symbol)
	}
	fin := *f.fin
	fin.Symbol = symbol
	return &fin, nil
}

func (f *fakeProviders) GetSentiment(_ context.Context, symbol string) (contracts.SentimentSummary, error) {
	score, ok := f.sentiments[symbol]
	if !ok {
		return contracts.SentimentSummary{}, fmt.Errorf("no coverage for %s", symbol)
	}
	label := "neutral"
	switch {
	case score >= 60:
		label = "positive"
	case score <= 40:
		label = "negative"
	}
	return contracts.SentimentSummary{Label: label, Score: score, ArticleCount: 5}, nil
}

// uptrendSeries builds a steadily rising OHLCV series long enough for
// every indicator
func uptrendSeries(symbol string, n int) *contracts.OHLCVSeries {
	candles := make([]contracts.Candle, n)
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		price := 100.0 + float64(i)*0.5 + 2.0*math.Sin(float64(i)/5.0)
		candles[i] = contracts.Candle{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Open:      price - 0.3,
			High:      price + 1.0,
			Low:       price - 1.0,
			Close:     price,
			Volume:    1_000_000 + int64(i)*10_000,
		}
	}
	return &contracts.OHLCVSeries{Symbol: symbol, Candles: candles}
}

func healthyFinancials() *contracts.CompanyFinancials {
	return &contracts.CompanyFinancials{
		Sector:           "Technology",
		PERatio:          ptr(15),
		PBRatio:          ptr(3),
		PSRatio:          ptr(2.5),
		ROE:              ptr(28),
		ProfitMargin:     ptr(22),
		OperatingMargin:  ptr(28),
		DebtToEquity:     ptr(0.4),
		CurrentRatio:     ptr(2.0),
		InterestCoverage: ptr(12),
		RevenueGrowth1Y:  ptr(18),
		RevenueGrowth3Y:  ptr(12),
		EarningsGrowth1Y: ptr(22),
		EarningsGrowth3Y: ptr(14),
		ForwardPE:        ptr(13),
		RevenueHistory:   []float64{100, 115, 130, 150, 170},
		ProfitHistory:    []float64{20, 24, 28, 33, 39},
	}
}

func testOrchestrator(f *fakeProviders) *Orchestrator {
	return NewOrchestrator(f, f, f, Options{
		HistoryDays:   120,
		Workers:       2,
		SymbolTimeout: 5 * time.Second,
	}, logger.NewNop())
}

func TestAnalyzeAllViewsMeasured(t *testing.T) {
	f := &fakeProviders{
		prices:     map[string]float64{"AAPL": 180.0},
		sentiments: map[string]float64{"AAPL": 78.0},
		fin:        healthyFinancials(),
		series:     uptrendSeries("AAPL", 120),
	}

	record, err := testOrchestrator(f).Analyze(context.Background(), "aapl", contracts.HorizonWeekly)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", record.Symbol)
	assert.Equal(t, contracts.HorizonWeekly, record.TimeHorizon)
	assert.Equal(t, 180.0, record.CurrentPrice)

	assert.True(t, record.Scores.Technical.Measured)
	assert.True(t, record.Scores.Fundamental.Measured)
	assert.True(t, record.Scores.Sentiment.Measured)
	assert.Equal(t, 78.0, record.Scores.Sentiment.Score)

	assert.GreaterOrEqual(t, record.Confidence, 0.0)
	assert.LessOrEqual(t, record.Confidence, 100.0)
	assert.Equal(t, contracts.ActionForConfidence(record.Confidence), record.Action)

	assert.Greater(t, record.TargetPrice, 0.0)
	assert.Less(t, record.StopLoss, record.CurrentPrice)
	assert.NotEmpty(t, record.Reasons)
	assert.False(t, record.GeneratedAt.IsZero())
}

func TestAnalyzeProviderFailuresSubstituteDefaults(t *testing.T) {
	f := &fakeProviders{
		prices:     map[string]float64{"XYZ": 50.0},
		historyErr: fmt.Errorf("quota exceeded"),
		finErr:     fmt.Errorf("upstream 500"),
		// no sentiment entry either
	}

	record, err := testOrchestrator(f).Analyze(context.Background(), "XYZ", contracts.HorizonDaily)
	require.NoError(t, err)

	// All three views defaulted to neutral 50, distinguishable from a
	// measured 50
	assert.False(t, record.Scores.Technical.Measured)
	assert.False(t, record.Scores.Fundamental.Measured)
	assert.False(t, record.Scores.Sentiment.Measured)
	assert.NotEmpty(t, record.Scores.Technical.Reason)

	assert.InDelta(t, 50.0, record.Confidence, 1e-9)
	assert.Equal(t, contracts.ActionHold, record.Action)

	// Defaulted views surface as risks
	assert.Contains(t, record.Risks, "Technical view unavailable; neutral default used")
	assert.Contains(t, record.Risks, "Fundamental view unavailable; neutral default used")
	assert.Contains(t, record.Risks, "Sentiment view unavailable; neutral default used")
}

func TestAnalyzePriceFailureIsFatal(t *testing.T) {
	f := &fakeProviders{prices: map[string]float64{}}

	_, err := testOrchestrator(f).Analyze(context.Background(), "GONE", contracts.HorizonWeekly)
	assert.Error(t, err)
}

func TestAnalyzeInputValidation(t *testing.T) {
	f := &fakeProviders{prices: map[string]float64{"AAPL": 180.0}}
	o := testOrchestrator(f)

	_, err := o.Analyze(context.Background(), "  ", contracts.HorizonWeekly)
	assert.Error(t, err)

	_, err = o.Analyze(context.Background(), "AAPL", contracts.Horizon("hourly"))
	assert.Error(t, err)
}

func TestAnalyzeIdempotent(t *testing.T) {
	f := &fakeProviders{
		prices:     map[string]float64{"AAPL": 180.0},
		sentiments: map[string]float64{"AAPL": 70.0},
		fin:        healthyFinancials(),
		series:     uptrendSeries("AAPL", 120),
	}
	o := testOrchestrator(f)

	first, err := o.Analyze(context.Background(), "AAPL", contracts.HorizonMonthly)
	require.NoError(t, err)
	second, err := o.Analyze(context.Background(), "AAPL", contracts.HorizonMonthly)
	require.NoError(t, err)

	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Action, second.Action)
}

func TestHorizonWeightsShiftConfidence(t *testing.T) {
	// Strong fundamentals, absent technicals and sentiment: the
	// fundamental-heavy yearly horizon must score higher than the
	// technical-heavy daily one
	f := &fakeProviders{
		prices:     map[string]float64{"AAPL": 180.0},
		historyErr: fmt.Errorf("no history"),
		fin:        healthyFinancials(),
	}
	o := testOrchestrator(f)

	daily, err := o.Analyze(context.Background(), "AAPL", contracts.HorizonDaily)
	require.NoError(t, err)
	yearly, err := o.Analyze(context.Background(), "AAPL", contracts.HorizonYearly)
	require.NoError(t, err)

	require.True(t, daily.Scores.Fundamental.Measured)
	require.Greater(t, daily.Scores.Fundamental.Score, 50.0)
	assert.Greater(t, yearly.Confidence, daily.Confidence)
}

func TestDeepAnalyzeCarriesEngineDetail(t *testing.T) {
	f := &fakeProviders{
		prices:     map[string]float64{"AAPL": 180.0},
		sentiments: map[string]float64{"AAPL": 80.0},
		fin:        healthyFinancials(),
		series:     uptrendSeries("AAPL", 120),
	}

	enriched, err := testOrchestrator(f).DeepAnalyze(context.Background(), "AAPL", contracts.HorizonWeekly)
	require.NoError(t, err)

	require.NotNil(t, enriched.Technical)
	require.NotNil(t, enriched.Fundamental)
	require.NotNil(t, enriched.Quality)
	assert.Equal(t, 80.0, enriched.Sentiment.Score)

	assert.NotEmpty(t, enriched.Highlights)
	assert.NotEmpty(t, enriched.Strategy)
	assert.NotEmpty(t, enriched.MarketContext)
	assert.NotEmpty(t, enriched.CompetitivePosition)
}
