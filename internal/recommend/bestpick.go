package recommend

import (
	"context"
	"fmt"

	"github.com/wonny/advisor/internal/contracts"
)

// Blend weights for the monthly pick: confidence vs fundamental score
const (
	monthlyConfidenceWeight  = 0.6
	monthlyFundamentalWeight = 0.4

	// Monthly candidates need at least this fundamental score
	monthlyFundamentalFloor = 60.0
)

// PickOfWeek selects the highest-confidence buy-rated symbol from a
// weekly ranking of the universe and returns it enriched
func (o *Orchestrator) PickOfWeek(ctx context.Context, universe []string) (*contracts.EnrichedRecommendation, error) {
	batch, err := o.Rank(ctx, contracts.HorizonWeekly, universe, len(universe))
	if err != nil {
		return nil, fmt.Errorf("weekly ranking: %w", err)
	}

	var winner *contracts.RecommendationRecord
	for i := range batch.Recommendations {
		r := &batch.Recommendations[i]
		if !r.Action.IsBuy() {
			continue
		}
		if winner == nil || r.Confidence > winner.Confidence {
			winner = r
		}
	}

	if winner == nil {
		return nil, fmt.Errorf("no buy-rated candidate in %d analyzed symbols", batch.Succeeded)
	}

	return o.DeepAnalyze(ctx, winner.Symbol, contracts.HorizonWeekly)
}

// PickOfMonth selects the best monthly candidate by a blended score of
// confidence and fundamental strength, restricted to buy-rated symbols
// with a measured fundamental score at or above the floor
func (o *Orchestrator) PickOfMonth(ctx context.Context, universe []string) (*contracts.EnrichedRecommendation, error) {
	batch, err := o.Rank(ctx, contracts.HorizonMonthly, universe, len(universe))
	if err != nil {
		return nil, fmt.Errorf("monthly ranking: %w", err)
	}

	var winner *contracts.RecommendationRecord
	var bestBlend float64
	for i := range batch.Recommendations {
		r := &batch.Recommendations[i]
		if !r.Action.IsBuy() {
			continue
		}
		if !r.Scores.Fundamental.Measured || r.Scores.Fundamental.Score < monthlyFundamentalFloor {
			continue
		}

		blend := monthlyConfidenceWeight*r.Confidence + monthlyFundamentalWeight*r.Scores.Fundamental.Score
		if winner == nil || blend > bestBlend {
			winner = r
			bestBlend = blend
		}
	}

	if winner == nil {
		return nil, fmt.Errorf("no qualifying candidate in %d analyzed symbols", batch.Succeeded)
	}

	return o.DeepAnalyze(ctx, winner.Symbol, contracts.HorizonMonthly)
}
