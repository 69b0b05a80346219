package automation

import (
	"context"
	"testing"
	"time"

	"github.com/R3E-Network/chainreactor/domain/trigger"
	"github.com/R3E-Network/chainreactor/reactor/collector"
	"github.com/R3E-Network/chainreactor/reactor/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	actions []executor.ChainAction
}

func (s *recordingSubmitter) Submit(action executor.ChainAction) error {
	s.actions = append(s.actions, action)
	return nil
}

func TestStrategySyncStateComputesFirstNextRun(t *testing.T) {
	job := &Job{ID: "job-1", Trigger: trigger.TypeCron, Schedule: "* * * * *", Status: JobStatusActive}
	strategy := NewStrategy(StaticJobStore{Jobs: []*Job{job}}, nil)

	submitter := &recordingSubmitter{}
	require.NoError(t, strategy.SyncState(context.Background(), submitter))
	assert.False(t, job.NextRun.IsZero())
}

func TestStrategyTickFiresDueCronJob(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	job := &Job{ID: "job-1", Trigger: trigger.TypeCron, Schedule: "* * * * *", Status: JobStatusActive, NextRun: past}
	strategy := NewStrategy(StaticJobStore{Jobs: []*Job{job}}, nil)
	require.NoError(t, strategy.SyncState(context.Background(), &recordingSubmitter{}))
	job.NextRun = past // SyncState would have overwritten a zero NextRun; re-pin for this test

	submitter := &recordingSubmitter{}
	event := collector.NewChainEventFromTick(collector.TickEvent{At: time.Now()})
	strategy.ProcessEvent(context.Background(), event, submitter)

	require.Len(t, submitter.actions, 1)
	assert.Equal(t, 1, job.RunCount)
	assert.True(t, job.NextRun.After(past))
}

func TestStrategyTickSkipsNotYetDueJob(t *testing.T) {
	future := time.Now().Add(time.Hour)
	job := &Job{ID: "job-1", Trigger: trigger.TypeCron, Schedule: "* * * * *", Status: JobStatusActive, NextRun: future}
	strategy := NewStrategy(StaticJobStore{Jobs: []*Job{job}}, nil)
	require.NoError(t, strategy.SyncState(context.Background(), &recordingSubmitter{}))
	job.NextRun = future

	submitter := &recordingSubmitter{}
	event := collector.NewChainEventFromTick(collector.TickEvent{At: time.Now()})
	strategy.ProcessEvent(context.Background(), event, submitter)

	assert.Empty(t, submitter.actions)
	assert.Equal(t, 0, job.RunCount)
}

func TestStrategyBlockFiresEventTriggeredJob(t *testing.T) {
	job := &Job{ID: "job-2", Trigger: trigger.TypeEvent, Status: JobStatusActive}
	strategy := NewStrategy(StaticJobStore{Jobs: []*Job{job}}, nil)
	require.NoError(t, strategy.SyncState(context.Background(), &recordingSubmitter{}))

	submitter := &recordingSubmitter{}
	event := collector.NewChainEventFromNewBlock(collector.NewBlockEvent{Index: 100})
	strategy.ProcessEvent(context.Background(), event, submitter)

	require.Len(t, submitter.actions, 1)
	assert.Equal(t, 1, job.RunCount)
}

func TestStrategyHonorsMaxRuns(t *testing.T) {
	job := &Job{ID: "job-3", Trigger: trigger.TypeEvent, Status: JobStatusActive, MaxRuns: 1}
	strategy := NewStrategy(StaticJobStore{Jobs: []*Job{job}}, nil)
	require.NoError(t, strategy.SyncState(context.Background(), &recordingSubmitter{}))

	submitter := &recordingSubmitter{}
	event := collector.NewChainEventFromNewBlock(collector.NewBlockEvent{Index: 1})
	strategy.ProcessEvent(context.Background(), event, submitter)
	strategy.ProcessEvent(context.Background(), event, submitter)

	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Len(t, submitter.actions, 1)
}

func TestStrategyIgnoresPausedJobs(t *testing.T) {
	job := &Job{ID: "job-4", Trigger: trigger.TypeEvent, Status: JobStatusPaused}
	strategy := NewStrategy(StaticJobStore{Jobs: []*Job{job}}, nil)
	require.NoError(t, strategy.SyncState(context.Background(), &recordingSubmitter{}))

	submitter := &recordingSubmitter{}
	event := collector.NewChainEventFromNewBlock(collector.NewBlockEvent{Index: 1})
	strategy.ProcessEvent(context.Background(), event, submitter)

	assert.Empty(t, submitter.actions)
}
