package collector

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// TickCollector emits a TickEvent on a fixed interval: a sleep loop
// translated to a time.Ticker.
type TickCollector struct {
	interval time.Duration
}

// NewTickCollector creates a TickCollector firing every interval.
func NewTickCollector(interval time.Duration) *TickCollector {
	return &TickCollector{interval: interval}
}

func (c *TickCollector) Name() string { return "TickCollector" }

func (c *TickCollector) GetEventStream(ctx context.Context) (<-chan ChainEvent, error) {
	out := make(chan ChainEvent)
	go func() {
		defer close(out)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				select {
				case out <- NewChainEventFromTick(TickEvent{At: now}):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// CronCollector emits a TickEvent every time a cron schedule fires, used by
// domain/automation to drive jobs on calendar schedules rather than a
// fixed interval.
type CronCollector struct {
	spec string
}

// NewCronCollector creates a CronCollector from a standard five-field cron
// expression.
func NewCronCollector(spec string) *CronCollector {
	return &CronCollector{spec: spec}
}

func (c *CronCollector) Name() string { return "CronCollector" }

func (c *CronCollector) GetEventStream(ctx context.Context) (<-chan ChainEvent, error) {
	sched, err := cron.ParseStandard(c.spec)
	if err != nil {
		return nil, err
	}

	out := make(chan ChainEvent)
	runner := cron.New()
	runner.Schedule(sched, cron.FuncJob(func() {
		select {
		case out <- NewChainEventFromTick(TickEvent{At: time.Now()}):
		case <-ctx.Done():
		}
	}))
	runner.Start()

	go func() {
		<-ctx.Done()
		<-runner.Stop().Done()
		close(out)
	}()

	return out, nil
}
