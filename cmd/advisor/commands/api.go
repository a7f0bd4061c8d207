package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/advisor/internal/api"
	"github.com/wonny/advisor/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the recommendation API server.

Endpoints:
  GET  /health                        - Health check
  GET  /api/recommendations/{symbol}  - Single-symbol recommendation
  GET  /api/analysis/{symbol}         - Deep analysis with engine detail
  GET  /api/rank                      - Ranked batch over the universe
  GET  /api/picks/week                - Stored pick of the week
  GET  /api/picks/month               - Stored pick of the month
  GET  /api/history/{symbol}          - Recent stored recommendations

Example:
  go run ./cmd/advisor api
  go run ./cmd/advisor api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	d, err := initDeps(true)
	if err != nil {
		return err
	}
	defer d.Close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	log := d.logger
	log.WithFields(map[string]interface{}{
		"port": d.cfg.Port,
		"env":  d.cfg.Env,
	}).Info("Initializing API server")

	handler := handlers.NewRecommendationHandler(d.orchestrator, d.repo, d.cfg.Analysis.Universe, log)
	router := api.NewRouter(handler, log)
	server := api.New(d.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
