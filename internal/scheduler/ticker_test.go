package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xfollow/pkg/logger"
)

func TestTickerRunsTask(t *testing.T) {
	ticker := New(5*time.Millisecond, logger.NewTestLogger())

	var runs atomic.Int32
	ticker.Start(func(ctx context.Context) { runs.Add(1) })
	defer ticker.Stop()

	assert.True(t, ticker.Running())
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestTickerStopIsImmediate(t *testing.T) {
	ticker := New(5*time.Millisecond, logger.NewTestLogger())

	var runs atomic.Int32
	ticker.Start(func(ctx context.Context) { runs.Add(1) })
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, time.Millisecond)

	assert.True(t, ticker.Stop())
	assert.False(t, ticker.Running())

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())

	assert.False(t, ticker.Stop())
}

func TestTickerNeverOverlaps(t *testing.T) {
	ticker := New(time.Millisecond, logger.NewTestLogger())

	var active, maxActive atomic.Int32
	var runs atomic.Int32
	ticker.Start(func(ctx context.Context) {
		n := active.Add(1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		runs.Add(1)
	})

	require.Eventually(t, func() bool { return runs.Load() >= 5 }, 2*time.Second, time.Millisecond)
	ticker.Stop()

	assert.Equal(t, int32(1), maxActive.Load())
	assert.GreaterOrEqual(t, ticker.Ticks(), 5)
}

func TestTickerRestartReplacesTask(t *testing.T) {
	ticker := New(2*time.Millisecond, logger.NewTestLogger())

	var mu sync.Mutex
	seen := map[string]int{}
	record := func(name string) Task {
		return func(ctx context.Context) {
			mu.Lock()
			seen[name]++
			mu.Unlock()
		}
	}

	ticker.Start(record("first"))
	ticker.Start(record("second"))
	defer ticker.Stop()

	mu.Lock()
	firstAtRestart := seen["first"]
	mu.Unlock()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen["second"] >= 2
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, firstAtRestart, seen["first"])
}

func TestTickerCancelsContextOnStop(t *testing.T) {
	ticker := New(time.Millisecond, logger.NewTestLogger())

	started := make(chan struct{})
	var once sync.Once
	var cancelled atomic.Bool
	ticker.Start(func(ctx context.Context) {
		once.Do(func() { close(started) })
		<-ctx.Done()
		cancelled.Store(true)
	})

	<-started
	ticker.Stop()
	assert.True(t, cancelled.Load())
}
