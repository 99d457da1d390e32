package chat

import (
	"context"
	"sync"
	"time"

	"github.com/sharma-alok1/RailMate/backend/pkg/log"
)

const (
	DefaultSweepInterval = time.Hour
	DefaultMaxIdle       = 24 * time.Hour
)

// Sweeper periodically expires idle sessions from a Service.
type Sweeper struct {
	store    *Service
	interval time.Duration
	maxIdle  time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewSweeper creates a sweeper. Non-positive durations take the defaults.
func NewSweeper(store *Service, interval, maxIdle time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdle
	}
	return &Sweeper{store: store, interval: interval, maxIdle: maxIdle}
}

// RunOnce performs a single sweep at the store's current time.
func (w *Sweeper) RunOnce() int {
	start := time.Now()
	removed := w.store.SweepExpired(w.store.Now(), w.maxIdle)
	if removed > 0 {
		log.Infow("expired idle chat sessions",
			"removed", removed,
			"remaining", w.store.Len(),
			"duration", time.Since(start).String(),
		)
	}
	return removed
}

// Start launches the periodic sweep. Calling it twice is a no-op.
func (w *Sweeper) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true

	go w.run(sweepCtx, w.done)
}

// Stop cancels the sweep loop and waits for it to exit.
func (w *Sweeper) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done
}

// IsRunning reports whether the sweep loop is active.
func (w *Sweeper) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Sweeper) run(ctx context.Context, done chan struct{}) {
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugw("session sweeper stopping")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}
