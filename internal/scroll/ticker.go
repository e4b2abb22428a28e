// internal/scroll/ticker.go
package scroll

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/lectern/internal/logger"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 30

// Tick is delivered once per frame. Gen identifies the ticker run that
// produced it so receivers can drop ticks from a run that has ended.
type Tick struct {
	Gen  uint64
	Time time.Time
}

// Ticker emits frame ticks from a single goroutine until stopped.
type Ticker struct {
	mu      sync.Mutex
	fps     int
	gen     uint64
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewTicker creates a stopped ticker for the given frame rate.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Ticker{fps: fps}
}

// Interval is the time between ticks.
func (t *Ticker) Interval() time.Duration {
	return time.Second / time.Duration(t.fps)
}

// Start launches the tick goroutine and returns the generation of this run.
// Calling Start on a running ticker restarts it. onTick receives the run's
// context and must not block past its cancellation.
func (t *Ticker) Start(ctx context.Context, onTick func(context.Context, Tick)) uint64 {
	t.Stop()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	gen := t.gen
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done
	t.running = true

	go func() {
		defer close(done)
		tk := time.NewTicker(t.Interval())
		defer tk.Stop()
		logger.DebugTagf("scroll", "Ticker: run %d started at %d fps", gen, t.fps)
		for {
			select {
			case <-runCtx.Done():
				logger.DebugTagf("scroll", "Ticker: run %d stopped", gen)
				return
			case now := <-tk.C:
				// Re-check so a tick racing with Stop is not delivered.
				if runCtx.Err() != nil {
					return
				}
				onTick(runCtx, Tick{Gen: gen, Time: now})
			}
		}
	}()
	return gen
}

// Stop cancels the current run and blocks until its goroutine has exited.
// No tick is delivered after Stop returns. Safe to call when stopped.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.running = false
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Running reports whether a run is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Generation returns the id of the latest run (0 if never started).
func (t *Ticker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// IsCurrent reports whether tk belongs to the active run.
func (t *Ticker) IsCurrent(tk Tick) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running && tk.Gen == t.gen
}
