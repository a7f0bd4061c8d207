package fundamentals

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/internal/fundamental"
	"github.com/wonny/advisor/pkg/config"
	"github.com/wonny/advisor/pkg/httputil"
	"github.com/wonny/advisor/pkg/logger"
	"github.com/wonny/advisor/pkg/redis"
)

// overviewResponse is the upstream company-overview payload. Every
// numeric field arrives as a string and may carry sentinel values
// ("None", "-", ""); normalization to typed optionals happens here at
// the boundary, not in the engines.
type overviewResponse struct {
	Symbol string `json:"Symbol"`
	Name   string `json:"Name"`
	Sector string `json:"Sector"`

	PERatio    string `json:"PERatio"`
	ForwardPE  string `json:"ForwardPE"`
	PBRatio    string `json:"PriceToBookRatio"`
	PSRatio    string `json:"PriceToSalesRatioTTM"`
	PEGRatio   string `json:"PEGRatio"`
	EVToEBITDA string `json:"EVToEBITDA"`

	EPS          string `json:"EPS"`
	BookValue    string `json:"BookValue"`
	RevenuePerSh string `json:"RevenuePerShareTTM"`

	GrossMargin     string `json:"GrossMargin"`
	OperatingMargin string `json:"OperatingMarginTTM"`
	ProfitMargin    string `json:"ProfitMargin"`
	ROE             string `json:"ReturnOnEquityTTM"`
	ROA             string `json:"ReturnOnAssetsTTM"`

	CurrentRatio string `json:"CurrentRatio"`
	QuickRatio   string `json:"QuickRatio"`
	CashRatio    string `json:"CashRatio"`

	DebtToEquity     string `json:"DebtToEquity"`
	DebtRatio        string `json:"DebtRatio"`
	InterestCoverage string `json:"InterestCoverage"`

	AssetTurnover       string `json:"AssetTurnover"`
	InventoryTurnover   string `json:"InventoryTurnover"`
	ReceivablesTurnover string `json:"ReceivablesTurnover"`

	DividendYield string `json:"DividendYield"`
	PayoutRatio   string `json:"PayoutRatio"`

	RevenueGrowth1Y  string `json:"RevenueGrowth1Y"`
	RevenueGrowth3Y  string `json:"RevenueGrowth3Y"`
	RevenueGrowth5Y  string `json:"RevenueGrowth5Y"`
	EarningsGrowth1Y string `json:"EarningsGrowth1Y"`
	EarningsGrowth3Y string `json:"EarningsGrowth3Y"`
	EarningsGrowth5Y string `json:"EarningsGrowth5Y"`
	BookValueGrowth  string `json:"BookValueGrowth"`
	DividendGrowth   string `json:"DividendGrowth"`

	WorkingCapital   string `json:"WorkingCapital"`
	RetainedEarnings string `json:"RetainedEarnings"`
	EBIT             string `json:"EBIT"`
	TotalAssets      string `json:"TotalAssets"`
	TotalLiabilities string `json:"TotalLiabilities"`
	Revenue          string `json:"RevenueTTM"`
	MarketCap        string `json:"MarketCapitalization"`

	RevenueHistory []float64 `json:"RevenueHistory"`
	ProfitHistory  []float64 `json:"ProfitHistory"`
	ROEHistory     []float64 `json:"ROEHistory"`
}

// Provider implements contracts.FundamentalsProvider over an HTTP
// company-overview endpoint
type Provider struct {
	client  *httputil.Client
	cache   *redis.Cache
	baseURL string
	apiKey  string
	ttl     time.Duration
	logger  *logger.Logger
}

// NewProvider creates a fundamentals provider
func NewProvider(cfg *config.Config, cache *redis.Cache, log *logger.Logger) *Provider {
	client := httputil.New(log).
		WithRetry(3, 2*time.Second).
		WithLocalRateLimit(1)

	// Share the upstream quota across processes when Redis is available
	if cache.Client().Enabled() {
		client = client.WithRateLimiter(
			redis.NewRateLimiter(cache.Client(), "fundamentals"),
			redis.FundamentalsRateLimit,
		)
	}

	return &Provider{
		client:  client,
		cache:   cache,
		baseURL: strings.TrimRight(cfg.Fundamentals.BaseURL, "/"),
		apiKey:  cfg.Fundamentals.APIKey,
		ttl:     cfg.Analysis.FundamentalsTTL,
		logger:  log,
	}
}

// GetCompanyFinancials fetches and normalizes one company's overview.
// Missing upstream fields become nil, never an error.
func (p *Provider) GetCompanyFinancials(ctx context.Context, symbol string) (*contracts.CompanyFinancials, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	cacheKey := "fundamentals:" + symbol

	var cached contracts.CompanyFinancials
	if hit, _ := p.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	endpoint := fmt.Sprintf("%s/overview?symbol=%s&apikey=%s",
		p.baseURL, url.QueryEscape(symbol), url.QueryEscape(p.apiKey))

	var overview overviewResponse
	if err := p.client.GetJSON(ctx, endpoint, &overview); err != nil {
		return nil, fmt.Errorf("fetch overview for %s: %w", symbol, err)
	}
	if overview.Symbol == "" && overview.Name == "" {
		return nil, fmt.Errorf("no overview data for %s", symbol)
	}

	fin := normalize(symbol, &overview)

	if err := p.cache.Set(ctx, cacheKey, fin, p.ttl); err != nil {
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Fundamentals cache write failed")
	}

	return fin, nil
}

// normalize converts the string-typed upstream payload into the typed
// optional-field contract. Margin, return and yield fields arrive as
// fractions and convert to percentages.
func normalize(symbol string, o *overviewResponse) *contracts.CompanyFinancials {
	parse := fundamental.ParseOptional
	percent := func(raw string) *float64 {
		return fundamental.PercentFromFraction(parse(raw))
	}

	return &contracts.CompanyFinancials{
		Symbol: symbol,
		Name:   o.Name,
		Sector: o.Sector,

		PERatio:    parse(o.PERatio),
		ForwardPE:  parse(o.ForwardPE),
		PBRatio:    parse(o.PBRatio),
		PSRatio:    parse(o.PSRatio),
		PEGRatio:   parse(o.PEGRatio),
		EVToEBITDA: parse(o.EVToEBITDA),

		EPS:          parse(o.EPS),
		BookValue:    parse(o.BookValue),
		RevenuePerSh: parse(o.RevenuePerSh),

		GrossMargin:     percent(o.GrossMargin),
		OperatingMargin: percent(o.OperatingMargin),
		ProfitMargin:    percent(o.ProfitMargin),
		ROE:             percent(o.ROE),
		ROA:             percent(o.ROA),

		CurrentRatio: parse(o.CurrentRatio),
		QuickRatio:   parse(o.QuickRatio),
		CashRatio:    parse(o.CashRatio),

		DebtToEquity:     parse(o.DebtToEquity),
		DebtRatio:        parse(o.DebtRatio),
		InterestCoverage: parse(o.InterestCoverage),

		AssetTurnover:       parse(o.AssetTurnover),
		InventoryTurnover:   parse(o.InventoryTurnover),
		ReceivablesTurnover: parse(o.ReceivablesTurnover),

		DividendYield: percent(o.DividendYield),
		PayoutRatio:   percent(o.PayoutRatio),

		RevenueGrowth1Y:  percent(o.RevenueGrowth1Y),
		RevenueGrowth3Y:  percent(o.RevenueGrowth3Y),
		RevenueGrowth5Y:  percent(o.RevenueGrowth5Y),
		EarningsGrowth1Y: percent(o.EarningsGrowth1Y),
		EarningsGrowth3Y: percent(o.EarningsGrowth3Y),
		EarningsGrowth5Y: percent(o.EarningsGrowth5Y),
		BookValueGrowth:  percent(o.BookValueGrowth),
		DividendGrowth:   percent(o.DividendGrowth),

		WorkingCapital:   parse(o.WorkingCapital),
		RetainedEarnings: parse(o.RetainedEarnings),
		EBIT:             parse(o.EBIT),
		TotalAssets:      parse(o.TotalAssets),
		TotalLiabilities: parse(o.TotalLiabilities),
		Revenue:          parse(o.Revenue),
		MarketCap:        parse(o.MarketCap),

		RevenueHistory: o.RevenueHistory,
		ProfitHistory:  o.ProfitHistory,
		ROEHistory:     o.ROEHistory,
	}
}
