package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	horizonFlag string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Multi-factor equity recommendation pipeline",
	Long: `Advisor CLI

Blends technical, fundamental, quality and sentiment analysis into
horizon-specific stock recommendations.

Usage:
  go run ./cmd/advisor [command]

Examples:
  go run ./cmd/advisor analyze AAPL --horizon weekly
  go run ./cmd/advisor rank AAPL MSFT GOOGL --limit 5
  go run ./cmd/advisor pick week
  go run ./cmd/advisor api
  go run ./cmd/advisor scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&horizonFlag, "horizon", "daily", "time horizon (daily|weekly|monthly|yearly)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
