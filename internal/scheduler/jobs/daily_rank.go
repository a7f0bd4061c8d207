package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/advisor/internal/contracts"
	"github.com/wonny/advisor/internal/recommend"
	"github.com/wonny/advisor/pkg/logger"
)

// DailyRankJob ranks the configured universe on the daily horizon
// after the market close and stores the batch
type DailyRankJob struct {
	orchestrator *recommend.Orchestrator
	repo         *recommend.Repository
	universe     []string
	logger       *logger.Logger
}

func NewDailyRankJob(orch *recommend.Orchestrator, repo *recommend.Repository, universe []string, log *logger.Logger) *DailyRankJob {
	return &DailyRankJob{
		orchestrator: orch,
		repo:         repo,
		universe:     universe,
		logger:       log,
	}
}

func (j *DailyRankJob) Name() string {
	return "daily_rank"
}

// Schedule runs weekdays at 16:30 (after US market close)
func (j *DailyRankJob) Schedule() string {
	return "0 30 16 * * 1-5"
}

func (j *DailyRankJob) Run(ctx context.Context) error {
	batch, err := j.orchestrator.Rank(ctx, contracts.HorizonDaily, j.universe, 0)
	if err != nil {
		return fmt.Errorf("daily rank failed: %w", err)
	}

	if err := j.repo.SaveBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to save daily rank batch: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"attempted": batch.Attempted,
		"succeeded": batch.Succeeded,
		"ranked":    len(batch.Recommendations),
	}).Info("Daily rank snapshot stored")

	return nil
}
