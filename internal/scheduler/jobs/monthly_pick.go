package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/advisor/internal/recommend"
	"github.com/wonny/advisor/pkg/logger"
)

// MonthlyPickJob computes the pick of the month and stores it
type MonthlyPickJob struct {
	orchestrator *recommend.Orchestrator
	repo         *recommend.Repository
	universe     []string
	logger       *logger.Logger
}

func NewMonthlyPickJob(orch *recommend.Orchestrator, repo *recommend.Repository, universe []string, log *logger.Logger) *MonthlyPickJob {
	return &MonthlyPickJob{
		orchestrator: orch,
		repo:         repo,
		universe:     universe,
		logger:       log,
	}
}

func (j *MonthlyPickJob) Name() string {
	return "monthly_pick"
}

// Schedule runs on the 1st of every month at 08:30
func (j *MonthlyPickJob) Schedule() string {
	return "0 30 8 1 * *"
}

func (j *MonthlyPickJob) Run(ctx context.Context) error {
	pick, err := j.orchestrator.PickOfMonth(ctx, j.universe)
	if err != nil {
		return fmt.Errorf("monthly pick failed: %w", err)
	}

	if err := j.repo.SavePick(ctx, recommend.PickKindMonth, pick); err != nil {
		return fmt.Errorf("failed to save monthly pick: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"symbol":     pick.Symbol,
		"confidence": pick.Confidence,
	}).Info("Monthly pick stored")

	return nil
}
