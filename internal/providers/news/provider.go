package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/pkg/config"
	"github.com/wonny/advisor/pkg/httputil"
	"github.com/wonny/advisor/pkg/logger"
	"github.com/wonny/advisor/pkg/redis"
)

// Provider implements contracts.SentimentProvider by scraping recent
// headlines for a symbol and scoring them against a sentiment lexicon
type Provider struct {
	client      *httputil.Client
	cache       *redis.Cache
	baseURL     string
	maxArticles int
	ttl         time.Duration
	logger      *logger.Logger
}

// NewProvider creates a news sentiment provider
func NewProvider(cfg *config.Config, cache *redis.Cache, log *logger.Logger) *Provider {
	maxArticles := cfg.News.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 20
	}

	client := httputil.New(log).
		WithRetry(2, time.Second).
		WithLocalRateLimit(1)

	// Share the scrape budget across processes when Redis is available
	if cache.Client().Enabled() {
		client = client.WithRateLimiter(
			redis.NewRateLimiter(cache.Client(), "news"),
			redis.NewsRateLimit,
		)
	}

	return &Provider{
		client:      client,
		cache:       cache,
		baseURL:     strings.TrimRight(cfg.News.BaseURL, "/"),
		maxArticles: maxArticles,
		ttl:         cfg.Analysis.SentimentTTL,
		logger:      log,
	}
}

// GetSentiment scrapes and scores recent headlines for one symbol.
// No coverage at all is an error the orchestrator maps to the neutral
// default.
func (p *Provider) GetSentiment(ctx context.Context, symbol string) (contracts.SentimentSummary, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return contracts.SentimentSummary{}, fmt.Errorf("empty symbol")
	}

	cacheKey := "sentiment:" + symbol

	var cached contracts.SentimentSummary
	if hit, _ := p.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	headlines, err := p.fetchHeadlines(ctx, symbol)
	if err != nil {
		return contracts.SentimentSummary{}, err
	}
	if len(headlines) == 0 {
		return contracts.SentimentSummary{}, fmt.Errorf("no headlines found for %s", symbol)
	}

	score := scoreHeadlines(headlines)
	summary := contracts.SentimentSummary{
		Label:        labelForScore(score),
		Score:        score,
		ArticleCount: len(headlines),
	}

	if err := p.cache.Set(ctx, cacheKey, summary, p.ttl); err != nil {
		p.logger.WithError(err).WithField("symbol", symbol).Warn("Sentiment cache write failed")
	}

	p.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"articles": len(headlines),
		"score":    score,
	}).Debug("Scored news sentiment")

	return summary, nil
}

func (p *Provider) fetchHeadlines(ctx context.Context, symbol string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s", p.baseURL, url.QueryEscape(symbol))

	resp, err := p.client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch news page for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse news page for %s: %w", symbol, err)
	}

	var headlines []string
	doc.Find("h3 a, a.headline, .news-item .title").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			headlines = append(headlines, text)
		}
		return len(headlines) < p.maxArticles
	})

	return headlines, nil
}
