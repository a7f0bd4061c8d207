package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/internal/recommend"
)

// pickCmd represents the pick command
var pickCmd = &cobra.Command{
	Use:   "pick [week|month]",
	Short: "Compute the best pick over the universe",
	Long: `Ranks the configured universe and selects the single best buy
candidate for the requested period.

Example:
  go run ./cmd/advisor pick week
  go run ./cmd/advisor pick month --save`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"week", "month"},
	RunE:      runPick,
}

var pickSave bool

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().BoolVar(&pickSave, "save", false, "persist the pick to the database")
}

func runPick(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if kind != recommend.PickKindWeek && kind != recommend.PickKindMonth {
		return fmt.Errorf("unknown pick kind: %s (want week or month)", kind)
	}

	d, err := initDeps(pickSave)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := context.Background()
	universe := d.cfg.Analysis.Universe

	var pick *contracts.EnrichedRecommendation
	switch kind {
	case recommend.PickKindWeek:
		pick, err = d.orchestrator.PickOfWeek(ctx, universe)
	case recommend.PickKindMonth:
		pick, err = d.orchestrator.PickOfMonth(ctx, universe)
	}
	if err != nil {
		return fmt.Errorf("pick of %s: %w", kind, err)
	}

	fmt.Printf("=== Pick of the %s ===\n\n", kind)
	printRecord(&pick.RecommendationRecord)
	printEnrichment(pick)

	if pickSave {
		if d.repo == nil {
			return fmt.Errorf("cannot save pick: database unavailable")
		}
		if err := d.repo.SavePick(ctx, kind, pick); err != nil {
			return fmt.Errorf("save pick: %w", err)
		}
		fmt.Println("\nPick saved")
	}

	return nil
}
