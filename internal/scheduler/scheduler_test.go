package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/advisor/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(_ context.Context) error {
	j.runs.Add(1)
	return j.err
}

func waitForHistory(t *testing.T, s *Scheduler, name string) []JobResult {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if results := s.History(name); len(results) > 0 {
			return results
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("no history recorded for job %s", name)
	return nil
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.NewNop())
	job := &fakeJob{name: "rank", schedule: "0 0 16 * * 1-5"}

	require.NoError(t, s.AddJob(job))
	assert.Error(t, s.AddJob(job))
}

func TestAddJobRejectsInvalidSchedule(t *testing.T) {
	s := New(logger.NewNop())
	job := &fakeJob{name: "bad", schedule: "not a cron expression"}

	assert.Error(t, s.AddJob(job))
}

func TestRunJobRecordsSuccess(t *testing.T) {
	s := New(logger.NewNop())
	job := &fakeJob{name: "pick", schedule: "0 30 8 * * 1"}

	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("pick"))

	results := waitForHistory(t, s, "pick")
	assert.True(t, results[0].Success)
	assert.Equal(t, "pick", results[0].JobName)
	assert.Equal(t, int32(1), job.runs.Load())
	assert.Equal(t, 1.0, s.history["pick"].SuccessRate())
}

func TestRunJobRetriesAndRecordsFailure(t *testing.T) {
	s := New(logger.NewNop())
	s.maxRetries = 2
	s.retryDelay = time.Millisecond

	job := &fakeJob{name: "flaky", schedule: "0 30 8 1 * *", err: errors.New("upstream down")}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("flaky"))

	results := waitForHistory(t, s, "flaky")
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "upstream down")
	assert.Equal(t, int32(2), job.runs.Load())
}

func TestRunJobUnknownName(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.RunJob("missing"))
}

func TestRemoveJob(t *testing.T) {
	s := New(logger.NewNop())
	job := &fakeJob{name: "rank", schedule: "0 0 16 * * 1-5"}

	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RemoveJob("rank"))
	assert.Error(t, s.RunJob("rank"))
	assert.Error(t, s.RemoveJob("rank"))
}

func TestJobHistoryCapsAtHundred(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "rank", Success: i%2 == 0})
	}

	assert.Len(t, h.Results, 100)
}
