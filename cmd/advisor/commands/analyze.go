package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/advisor/internal/contracts"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbol]",
	Short: "Analyze a single symbol",
	Long: `Runs the full multi-factor analysis for one symbol and prints
the recommendation.

Example:
  go run ./cmd/advisor analyze AAPL
  go run ./cmd/advisor analyze MSFT --horizon monthly --deep`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeDeep bool

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeDeep, "deep", false, "include engine detail, catalysts and strategy")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	horizon, err := contracts.ParseHorizon(horizonFlag)
	if err != nil {
		return err
	}

	d, err := initDeps(false)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := context.Background()
	symbol := strings.ToUpper(args[0])

	if analyzeDeep {
		enriched, err := d.orchestrator.DeepAnalyze(ctx, symbol, horizon)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", symbol, err)
		}

		printRecord(&enriched.RecommendationRecord)
		printEnrichment(enriched)
		return nil
	}

	record, err := d.orchestrator.Analyze(ctx, symbol, horizon)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", symbol, err)
	}

	printRecord(record)
	return nil
}

func printRecord(r *contracts.RecommendationRecord) {
	fmt.Printf("=== %s (%s) ===\n", r.Symbol, r.TimeHorizon)
	fmt.Printf("Action:      %s\n", r.Action)
	fmt.Printf("Confidence:  %.1f\n", r.Confidence)
	fmt.Printf("Price:       %.2f\n", r.CurrentPrice)
	fmt.Printf("Entry:       %.2f\n", r.EntryPoint)
	fmt.Printf("Target:      %.2f\n", r.TargetPrice)
	fmt.Printf("Stop-loss:   %.2f\n", r.StopLoss)

	fmt.Println("\nScores:")
	fmt.Printf("  Technical:    %s\n", formatOutcome(r.Scores.Technical))
	fmt.Printf("  Fundamental:  %s\n", formatOutcome(r.Scores.Fundamental))
	fmt.Printf("  Sentiment:    %s\n", formatOutcome(r.Scores.Sentiment))

	if len(r.Reasons) > 0 {
		fmt.Println("\nReasons:")
		for _, reason := range r.Reasons {
			fmt.Printf("  + %s\n", reason)
		}
	}

	if len(r.Risks) > 0 {
		fmt.Println("\nRisks:")
		for _, risk := range r.Risks {
			fmt.Printf("  - %s\n", risk)
		}
	}
}

func printEnrichment(e *contracts.EnrichedRecommendation) {
	if e.Strategy != "" {
		fmt.Printf("\nStrategy: %s\n", e.Strategy)
	}
	if e.MarketContext != "" {
		fmt.Printf("Context:  %s\n", e.MarketContext)
	}
	if e.CompetitivePosition != "" {
		fmt.Printf("Position: %s\n", e.CompetitivePosition)
	}

	if len(e.Highlights) > 0 {
		fmt.Println("\nHighlights:")
		for _, h := range e.Highlights {
			fmt.Printf("  * %s\n", h)
		}
	}

	if len(e.Catalysts) > 0 {
		fmt.Println("\nCatalysts:")
		for _, c := range e.Catalysts {
			fmt.Printf("  * %s\n", c)
		}
	}
}

func formatOutcome(o contracts.ScoreOutcome) string {
	if !o.Measured {
		return fmt.Sprintf("%.1f (default: %s)", o.Score, o.Reason)
	}
	return fmt.Sprintf("%.1f", o.Score)
}
