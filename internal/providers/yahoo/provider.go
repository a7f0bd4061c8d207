package yahoo

import (
	"context"
	"fmt"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/config"
	"github.com/wonny/advisor/pkg/logger"
	"github.com/wonny/advisor/pkg/redis"
)

// Provider implements contracts.PriceProvider against Yahoo Finance.
// Requests pass a local token-bucket limiter sized to the public API
// quota, and results are cached per data class.
type Provider struct {
	cache      *redis.Cache
	limiter    *rate.Limiter
	shared     *redis.RateLimiter
	quoteTTL   time.Duration
	historyTTL time.Duration
	logger     *logger.Logger
}

// NewProvider creates a Yahoo price provider
func NewProvider(cfg *config.Config, cache *redis.Cache, log *logger.Logger) *Provider {
	perSecond := cfg.Yahoo.RateLimit
	if perSecond <= 0 {
		perSecond = 5
	}

	p := &Provider{
		cache:      cache,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), perSecond),
		quoteTTL:   cfg.Analysis.QuoteTTL,
		historyTTL: cfg.Analysis.HistoryTTL,
		logger:     log,
	}

	// Share the quota across processes when Redis is available
	if cache.Client().Enabled() {
		p.shared = redis.NewRateLimiter(cache.Client(), "yahoo")
	}

	return p
}

// wait blocks until both the local and the shared limiter admit one
// request
func (p *Provider) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	if p.shared != nil {
		return p.shared.Wait(ctx, redis.YahooRateLimit)
	}
	return nil
}

// GetCurrentPrice returns the regular-market price for one symbol
func (p *Provider) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = normalizeSymbol(symbol)
	cacheKey := "quote:" + symbol

	var cached float64
	if hit, _ := p.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	if err := p.wait(ctx); err != nil {
		return 0, err
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return 0, fmt.Errorf("no market price for %s", symbol)
	}

	price := q.RegularMarketPrice
	if err := p.cache.Set(ctx, cacheKey, price, p.quoteTTL); err != nil {
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Quote cache write failed")
	}

	return price, nil
}

// GetHistory returns up to days of daily OHLCV bars, oldest first
func (p *Provider) GetHistory(ctx context.Context, symbol string, days int) (*contracts.OHLCVSeries, error) {
	symbol = normalizeSymbol(symbol)
	if days <= 0 {
		days = 365
	}
	cacheKey := fmt.Sprintf("history:%s:%d", symbol, days)

	var cached contracts.OHLCVSeries
	if hit, _ := p.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	series := &contracts.OHLCVSeries{Symbol: symbol}
	for iter.Next() {
		series.Candles = append(series.Candles, toCandle(iter.Bar()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	if len(series.Candles) == 0 {
		return nil, fmt.Errorf("empty history for %s", symbol)
	}

	if err := p.cache.Set(ctx, cacheKey, series, p.historyTTL); err != nil {
		p.logger.WithError(err).WithField("symbol", symbol).Warn("History cache write failed")
	}

	p.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(series.Candles),
		"days":   days,
	}).Debug("Fetched OHLCV history")

	return series, nil
}

// toCandle converts one chart bar. Bar timestamps are Unix seconds.
func toCandle(bar *finance.ChartBar) contracts.Candle {
	return contracts.Candle{
		Timestamp: time.Unix(int64(bar.Timestamp), 0),
		Open:      toFloat(bar.Open),
		High:      toFloat(bar.High),
		Low:       toFloat(bar.Low),
		Close:     toFloat(bar.Close),
		Volume:    int64(bar.Volume),
	}
}

// toFloat converts a chart bar price. Yahoo serves prices as exact
// decimals; the engines work in float64.
func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
