package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wonny/advisor/internal/contracts"
)

// Rank analyzes a symbol universe for one horizon and returns the
// top recommendations sorted by confidence. Symbols are fanned out
// over a bounded worker pool; one symbol's failure is recorded and
// skipped, never fatal to the batch.
func (o *Orchestrator) Rank(ctx context.Context, horizon contracts.Horizon, universe []string, limit int) (*contracts.BatchResult, error) {
	if len(universe) == 0 {
		return nil, fmt.Errorf("empty symbol universe")
	}
	if _, ok := o.weights[horizon]; !ok {
		return nil, fmt.Errorf("unknown horizon %q", horizon)
	}
	if limit <= 0 {
		limit = len(universe)
	}

	jobs := make(chan string)
	results := make(chan *contracts.RecommendationRecord)

	var wg sync.WaitGroup
	for i := 0; i < o.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				record := o.analyzeWithTimeout(ctx, symbol, horizon)
				if record != nil {
					results <- record
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, symbol := range universe {
			select {
			case jobs <- symbol:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var records []contracts.RecommendationRecord
	for record := range results {
		records = append(records, *record)
	}

	succeeded := len(records)

	filtered := records[:0]
	for _, r := range records {
		if r.Confidence >= o.opts.MinConfidence {
			filtered = append(filtered, r)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	o.logger.WithFields(map[string]interface{}{
		"horizon":   horizon,
		"attempted": len(universe),
		"succeeded": succeeded,
		"returned":  len(filtered),
	}).Info("Ranked symbol universe")

	return &contracts.BatchResult{
		Horizon:         horizon,
		Recommendations: filtered,
		Attempted:       len(universe),
		Succeeded:       succeeded,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// analyzeWithTimeout runs one symbol under the per-symbol deadline and
// swallows the failure: a nil return drops the symbol from the batch
func (o *Orchestrator) analyzeWithTimeout(ctx context.Context, symbol string, horizon contracts.Horizon) *contracts.RecommendationRecord {
	symbolCtx, cancel := context.WithTimeout(ctx, o.opts.SymbolTimeout)
	defer cancel()

	record, err := o.Analyze(symbolCtx, symbol, horizon)
	if err != nil {
		o.logger.WithError(err).WithFields(map[string]interface{}{
			"symbol":  symbol,
			"horizon": horizon,
		}).Warn("Symbol analysis failed, dropping from batch")
		return nil
	}
	return record
}
