package automation

import (
	"context"
	"sync"
	"time"

	"github.com/R3E-Network/chainreactor/domain/trigger"
	"github.com/R3E-Network/chainreactor/infrastructure/logging"
	"github.com/R3E-Network/chainreactor/reactor"
	"github.com/R3E-Network/chainreactor/reactor/collector"
	"github.com/R3E-Network/chainreactor/reactor/executor"
	"github.com/robfig/cron/v3"
)

// JobStore loads the initial set of jobs a Strategy evaluates. A real
// deployment backs this with a database-fetched list; tests and the demo
// binary can use a static StaticJobStore.
type JobStore interface {
	LoadJobs(ctx context.Context) ([]*Job, error)
}

// StaticJobStore is a JobStore over an in-memory slice of jobs, used by the
// demo binary and by tests.
type StaticJobStore struct {
	Jobs []*Job
}

func (s StaticJobStore) LoadJobs(context.Context) ([]*Job, error) { return s.Jobs, nil }

// Strategy evaluates scheduled automation jobs against Tick and NewBlock
// ChainEvents, submitting an invocation ChainAction when a job is due. It
// implements reactor.Strategy[collector.ChainEvent, executor.ChainAction].
type Strategy struct {
	reactor.Unnamed
	store  JobStore
	logger *logging.Logger

	mu   sync.Mutex
	jobs []*Job
}

// NewStrategy creates a Strategy backed by store. A nil logger defaults to
// logging.Default().
func NewStrategy(store JobStore, logger *logging.Logger) *Strategy {
	if logger == nil {
		logger = logging.Default()
	}
	return &Strategy{store: store, logger: logger}
}

func (s *Strategy) Name() string { return "AutomationStrategy" }

// SyncState loads the initial job set from the store. Jobs with a zero
// NextRun and a cron Schedule have their first NextRun computed here.
func (s *Strategy) SyncState(ctx context.Context, submitter reactor.ActionSubmitter[executor.ChainAction]) error {
	jobs, err := s.store.LoadJobs(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, job := range jobs {
		if job.Trigger == trigger.TypeCron && job.NextRun.IsZero() && job.Schedule != "" {
			if next, ok := nextCronRun(job.Schedule, now); ok {
				job.NextRun = next
			}
		}
	}

	s.mu.Lock()
	s.jobs = jobs
	s.mu.Unlock()
	return nil
}

// ProcessEvent advances due jobs and submits an invocation action for each.
func (s *Strategy) ProcessEvent(ctx context.Context, event collector.ChainEvent, submitter reactor.ActionSubmitter[executor.ChainAction]) {
	switch event.Kind {
	case collector.EventKindTick:
		tick, _ := event.AsTick()
		s.processTick(ctx, tick.At, submitter)
	case collector.EventKindNewBlock:
		block, _ := event.AsNewBlock()
		s.processBlock(ctx, block, submitter)
	}
}

func (s *Strategy) processTick(ctx context.Context, at time.Time, submitter reactor.ActionSubmitter[executor.ChainAction]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if job.Trigger != trigger.TypeCron || job.Status != JobStatusActive {
			continue
		}
		if job.NextRun.IsZero() || job.NextRun.After(at) {
			continue
		}

		s.invoke(ctx, job, at, submitter)

		if next, ok := nextCronRun(job.Schedule, at); ok {
			job.NextRun = next
		}
	}
}

func (s *Strategy) processBlock(ctx context.Context, block collector.NewBlockEvent, submitter reactor.ActionSubmitter[executor.ChainAction]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if job.Trigger != trigger.TypeEvent || job.Status != JobStatusActive {
			continue
		}
		s.invoke(ctx, job, time.Now(), submitter)
	}
}

// invoke submits the job's invocation action and advances its run
// bookkeeping, honoring MaxRuns. Caller must hold s.mu.
func (s *Strategy) invoke(ctx context.Context, job *Job, at time.Time, submitter reactor.ActionSubmitter[executor.ChainAction]) {
	action := executor.NewChainActionFromLogMessage(executor.LogMessageAction{
		Message: "automation job invoked",
		Fields: map[string]interface{}{
			"job_id":      job.ID,
			"function_id": job.FunctionID,
			"run_count":   job.RunCount + 1,
		},
	})

	if err := submitter.Submit(action); err != nil {
		s.logger.Warn(ctx, "failed to submit automation action", map[string]interface{}{
			"job_id": job.ID,
			"error":  err.Error(),
		})
		return
	}

	job.RunCount++
	job.LastRun = at
	job.UpdatedAt = at
	if job.IsCompleted() {
		job.Status = JobStatusCompleted
	}
}

func nextCronRun(spec string, after time.Time) (time.Time, bool) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, false
	}
	return sched.Next(after), true
}
