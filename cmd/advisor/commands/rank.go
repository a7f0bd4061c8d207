package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/advisor/internal/contracts"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank [symbols...]",
	Short: "Rank symbols by confidence",
	Long: `Analyzes a set of symbols concurrently and prints them ranked
by confidence. Without arguments the configured universe is used.

Example:
  go run ./cmd/advisor rank
  go run ./cmd/advisor rank AAPL MSFT GOOGL --horizon weekly --limit 5`,
	RunE: runRank,
}

var (
	rankLimit int
	rankSave  bool
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().IntVar(&rankLimit, "limit", 10, "maximum results to print")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "persist the batch to the database")
}

func runRank(cmd *cobra.Command, args []string) error {
	horizon, err := contracts.ParseHorizon(horizonFlag)
	if err != nil {
		return err
	}

	d, err := initDeps(rankSave)
	if err != nil {
		return err
	}
	defer d.Close()

	universe := d.cfg.Analysis.Universe
	if len(args) > 0 {
		universe = make([]string, len(args))
		for i, s := range args {
			universe[i] = strings.ToUpper(s)
		}
	}

	ctx := context.Background()
	batch, err := d.orchestrator.Rank(ctx, horizon, universe, rankLimit)
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}

	fmt.Printf("=== Ranked %s recommendations (%d/%d analyzed) ===\n\n",
		batch.Horizon, batch.Succeeded, batch.Attempted)

	for i, rec := range batch.Recommendations {
		fmt.Printf("%2d. %-6s %-12s conf %5.1f  target %8.2f  stop %8.2f\n",
			i+1, rec.Symbol, rec.Action, rec.Confidence, rec.TargetPrice, rec.StopLoss)
	}

	if rankSave {
		if d.repo == nil {
			return fmt.Errorf("cannot save batch: database unavailable")
		}
		if err := d.repo.SaveBatch(ctx, batch); err != nil {
			return fmt.Errorf("save batch: %w", err)
		}
		fmt.Println("\nBatch saved")
	}

	return nil
}
