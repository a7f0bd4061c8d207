package contracts

import "context"

// PriceProvider supplies current and historical prices. Implementations
// may fail per-symbol; the orchestrator treats failure as "no technical
// input" and substitutes neutral defaults.
type PriceProvider interface {
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
	GetHistory(ctx context.Context, symbol string, days int) (*OHLCVSeries, error)
}

// FundamentalsProvider supplies normalized company financials.
// Missing sections arrive as nil fields, not errors.
type FundamentalsProvider interface {
	GetCompanyFinancials(ctx context.Context, symbol string) (*CompanyFinancials, error)
}

// SentimentProvider supplies aggregated news sentiment.
// Absence of coverage is not an error; callers substitute the
// neutral default on failure.
type SentimentProvider interface {
	GetSentiment(ctx context.Context, symbol string) (SentimentSummary, error)
}
