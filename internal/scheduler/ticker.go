package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"xfollow/pkg/logger"
)

// Task is one unit of recurring work. It receives a context that is cancelled
// when the ticker stops.
type Task func(ctx context.Context)

// Ticker runs a single recurring task on one worker goroutine.
// A tick never starts before the previous one has returned.
type Ticker struct {
	interval time.Duration
	logger   logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ticks  atomic.Int64
}

// New creates a stopped ticker
func New(interval time.Duration, log logger.Logger) *Ticker {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Ticker{
		interval: interval,
		logger:   log,
	}
}

// Start installs task as the recurring job, replacing any running one.
// The first run happens one interval after Start.
func (t *Ticker) Start(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	t.logger.DebugWithFields("scan interval started", map[string]interface{}{
		"interval": t.interval,
	})

	go t.worker(ctx, done, task)
}

// Stop cancels the recurring job and waits for the worker to exit.
// It reports whether a job was running. Stop must not be called from a Task.
func (t *Ticker) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopLocked()
}

// Running reports whether a job is installed
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Ticks returns how many times a task has been run since the ticker was created
func (t *Ticker) Ticks() int {
	return int(t.ticks.Load())
}

func (t *Ticker) stopLocked() bool {
	if t.cancel == nil {
		return false
	}

	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil

	t.logger.Debug("scan interval stopped")
	return true
}

func (t *Ticker) worker(ctx context.Context, done chan struct{}, task Task) {
	defer close(done)

	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			// a stop that raced with this tick wins
			if ctx.Err() != nil {
				return
			}
			task(ctx)
			t.ticks.Add(1)
		}
	}
}
