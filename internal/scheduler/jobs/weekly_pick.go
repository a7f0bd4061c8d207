package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/advisor/internal/recommend"
	"github.com/wonny/advisor/pkg/logger"
)

// WeeklyPickJob computes the pick of the week and stores it
type WeeklyPickJob struct {
	orchestrator *recommend.Orchestrator
	repo         *recommend.Repository
	universe     []string
	logger       *logger.Logger
}

func NewWeeklyPickJob(orch *recommend.Orchestrator, repo *recommend.Repository, universe []string, log *logger.Logger) *WeeklyPickJob {
	return &WeeklyPickJob{
		orchestrator: orch,
		repo:         repo,
		universe:     universe,
		logger:       log,
	}
}

func (j *WeeklyPickJob) Name() string {
	return "weekly_pick"
}

// Schedule runs Mondays at 08:30, before the market opens
func (j *WeeklyPickJob) Schedule() string {
	return "0 30 8 * * 1"
}

func (j *WeeklyPickJob) Run(ctx context.Context) error {
	pick, err := j.orchestrator.PickOfWeek(ctx, j.universe)
	if err != nil {
		return fmt.Errorf("weekly pick failed: %w", err)
	}

	if err := j.repo.SavePick(ctx, recommend.PickKindWeek, pick); err != nil {
		return fmt.Errorf("failed to save weekly pick: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"symbol":     pick.Symbol,
		"confidence": pick.Confidence,
	}).Info("Weekly pick stored")

	return nil
}
