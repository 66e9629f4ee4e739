package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/status-im/market-dashboard/metrics"
)

// Scheduler runs a background task at regular intervals.
// Trigger asks for an extra run without waiting for the next tick.
type Scheduler struct {
	name     string
	interval time.Duration
	task     func(context.Context)
	trigger  chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	lastRun  time.Time
}

// New creates a new Scheduler instance. name labels the refresh metrics.
func New(name string, interval time.Duration, task func(context.Context)) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		trigger:  make(chan struct{}, 1),
	}
}

// Start begins executing the task at the specified interval
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.run(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-s.trigger:
				s.run(ctx)
				ticker.Reset(s.interval)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	s.task(ctx)
	metrics.RecordRefreshCycle(s.name, start)

	s.mu.Lock()
	s.lastRun = start
	s.mu.Unlock()
}

// Trigger requests an immediate run. Requests made while one is pending are merged.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Stop terminates the periodic task execution
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	// run() takes the lock, so wait outside of it
	s.wg.Wait()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns true if the task is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastRun returns when the task last started, zero if it never ran
func (s *Scheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}
