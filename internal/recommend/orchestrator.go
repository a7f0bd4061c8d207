package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/internal/fundamental"
	"github.com/wonny/advisor/internal/quality"
	"github.com/wonny/advisor/internal/technical"
	"github.com/wonny/advisor/pkg/logger"
)

// Options tunes orchestrator behavior. Zero values fall back to
// sensible defaults in NewOrchestrator.
type Options struct {
	// HistoryDays is the OHLCV lookback requested from the price
	// provider
	HistoryDays int

	// Workers bounds batch fan-out concurrency. Sized to upstream
	// provider quotas, not CPU.
	Workers int

	// MinConfidence filters ranked batch output
	MinConfidence float64

	// SymbolTimeout caps one symbol's full analysis
	SymbolTimeout time.Duration
}

// Orchestrator blends the technical, fundamental, sentiment and
// quality views into horizon-specific recommendations. Provider
// failures in any one view substitute a neutral default so a single
// missing input never sinks the whole analysis.
type Orchestrator struct {
	prices       contracts.PriceProvider
	fundamentals contracts.FundamentalsProvider
	sentiment    contracts.SentimentProvider

	technical   *technical.Engine
	fundamental *fundamental.Engine
	quality     *quality.Engine

	weights  map[contracts.Horizon]contracts.WeightProfile
	policies map[contracts.Horizon]TargetPolicy
	opts     Options

	logger *logger.Logger
}

// NewOrchestrator wires the three providers and the analysis engines
// with the default weight and target tables
func NewOrchestrator(
	prices contracts.PriceProvider,
	fundamentals contracts.FundamentalsProvider,
	sentiment contracts.SentimentProvider,
	opts Options,
	log *logger.Logger,
) *Orchestrator {
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 365
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.SymbolTimeout <= 0 {
		opts.SymbolTimeout = 30 * time.Second
	}

	return &Orchestrator{
		prices:       prices,
		fundamentals: fundamentals,
		sentiment:    sentiment,
		technical:    technical.NewEngine(log),
		fundamental:  fundamental.NewEngine(log),
		quality:      quality.NewEngine(log),
		weights:      contracts.DefaultWeightProfiles(),
		policies:     DefaultTargetPolicies(),
		opts:         opts,
		logger:       log,
	}
}

// symbolAnalysis collects the per-view outcomes for one symbol. The
// concurrent branches each write disjoint fields before the join.
type symbolAnalysis struct {
	price float64

	technical   contracts.ScoreOutcome
	fundamental contracts.ScoreOutcome
	sentiment   contracts.ScoreOutcome

	techSnap    *contracts.TechnicalSnapshot
	fundSnap    *contracts.FundamentalSnapshot
	quality     *contracts.QualityAnalysis
	sentSummary contracts.SentimentSummary
}

// Analyze produces one recommendation for a (symbol, horizon) pair
func (o *Orchestrator) Analyze(ctx context.Context, symbol string, horizon contracts.Horizon) (*contracts.RecommendationRecord, error) {
	record, _, err := o.analyze(ctx, symbol, horizon)
	return record, err
}

func (o *Orchestrator) analyze(ctx context.Context, symbol string, horizon contracts.Horizon) (*contracts.RecommendationRecord, *symbolAnalysis, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, nil, fmt.Errorf("empty symbol")
	}

	weights, ok := o.weights[horizon]
	if !ok {
		return nil, nil, fmt.Errorf("unknown horizon %q", horizon)
	}

	// Price is the one hard requirement: without it there is nothing
	// to recommend against
	price, err := o.prices.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch price for %s: %w", symbol, err)
	}

	analysis := o.runSubAnalyses(ctx, symbol)
	analysis.price = price

	confidence := composeConfidence(analysis, weights)
	action := contracts.ActionForConfidence(confidence)

	policy := o.policies[horizon]
	target, stop := policy.Targets(price, confidence)

	entry := price
	if analysis.techSnap != nil {
		entry = policy.EntryPoint(price, analysis.techSnap.Support)
	}

	record := &contracts.RecommendationRecord{
		Symbol:       symbol,
		TimeHorizon:  horizon,
		CurrentPrice: price,
		Scores: contracts.SubScores{
			Technical:   analysis.technical,
			Fundamental: analysis.fundamental,
			Sentiment:   analysis.sentiment,
		},
		Confidence:  confidence,
		Action:      action,
		TargetPrice: target,
		StopLoss:    stop,
		EntryPoint:  entry,
		Reasons:     buildReasons(analysis),
		Risks:       buildRisks(analysis),
		GeneratedAt: time.Now().UTC(),
	}

	o.logger.WithFields(map[string]interface{}{
		"symbol":     symbol,
		"horizon":    horizon,
		"confidence": confidence,
		"action":     action,
	}).Debug("Composed recommendation")

	return record, analysis, nil
}

// runSubAnalyses fans the independent views out on goroutines and
// joins before returning. Each branch catches its own failure and
// substitutes the neutral default with a reason.
func (o *Orchestrator) runSubAnalyses(ctx context.Context, symbol string) *symbolAnalysis {
	analysis := &symbolAnalysis{}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		analysis.technical, analysis.techSnap = o.runTechnical(ctx, symbol)
	}()

	go func() {
		defer wg.Done()
		analysis.fundamental, analysis.fundSnap, analysis.quality = o.runFundamental(ctx, symbol)
	}()

	go func() {
		defer wg.Done()
		analysis.sentiment, analysis.sentSummary = o.runSentiment(ctx, symbol)
	}()

	wg.Wait()
	return analysis
}

func (o *Orchestrator) runTechnical(ctx context.Context, symbol string) (contracts.ScoreOutcome, *contracts.TechnicalSnapshot) {
	series, err := o.prices.GetHistory(ctx, symbol, o.opts.HistoryDays)
	if err != nil {
		o.logger.WithError(err).WithField("symbol", symbol).Warn("History fetch failed, defaulting technical view")
		return contracts.DefaultScore("history unavailable: " + err.Error()), nil
	}

	snapshot, err := o.technical.Analyze(series)
	if err != nil {
		return contracts.DefaultScore("technical analysis failed: " + err.Error()), nil
	}

	return contracts.MeasuredScore(o.technical.Score(snapshot)), snapshot
}

// runFundamental serves both the fundamental and quality views from a
// single financials fetch
func (o *Orchestrator) runFundamental(ctx context.Context, symbol string) (contracts.ScoreOutcome, *contracts.FundamentalSnapshot, *contracts.QualityAnalysis) {
	fin, err := o.fundamentals.GetCompanyFinancials(ctx, symbol)
	if err != nil {
		o.logger.WithError(err).WithField("symbol", symbol).Warn("Financials fetch failed, defaulting fundamental view")
		return contracts.DefaultScore("financials unavailable: " + err.Error()), nil, nil
	}

	snapshot, err := o.fundamental.Analyze(fin)
	if err != nil {
		return contracts.DefaultScore("fundamental analysis failed: " + err.Error()), nil, nil
	}

	qualityAnalysis, err := o.quality.Analyze(fin)
	if err != nil {
		qualityAnalysis = nil
	}

	return contracts.MeasuredScore(o.fundamental.Score(snapshot)), snapshot, qualityAnalysis
}

func (o *Orchestrator) runSentiment(ctx context.Context, symbol string) (contracts.ScoreOutcome, contracts.SentimentSummary) {
	summary, err := o.sentiment.GetSentiment(ctx, symbol)
	if err != nil {
		o.logger.WithError(err).WithField("symbol", symbol).Warn("Sentiment fetch failed, defaulting to neutral")
		return contracts.DefaultScore("sentiment unavailable: " + err.Error()), contracts.NeutralSentiment()
	}

	return contracts.MeasuredScore(summary.Score), summary
}

// composeConfidence blends the three outcomes with the horizon's
// weight profile. Every outcome carries a score (measured or neutral
// default) so the weight sum is always full.
func composeConfidence(a *symbolAnalysis, weights contracts.WeightProfile) float64 {
	sum := a.technical.Score*weights.Technical +
		a.fundamental.Score*weights.Fundamental +
		a.sentiment.Score*weights.Sentiment

	weightSum := weights.Sum()
	if weightSum == 0 {
		return 50.0
	}

	confidence := sum / weightSum
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}
