package gate

import (
	"context"
	"sync"
	"time"

	"saas-admin-backend/internal/database/models"
	"saas-admin-backend/internal/logger"
)

// Snapshot is the latest resolved gate state. Checking is true until the
// first poll resolves; consumers must render a neutral loading state while
// it is set, never real content or the maintenance page.
type Snapshot struct {
	Checking  bool                      `json:"checking"`
	Window    *models.MaintenanceWindow `json:"window,omitempty"`
	CheckedAt time.Time                 `json:"checked_at"`
}

// Watcher owns the gate polling loop. It re-evaluates on a fixed interval
// with an explicit start/stop lifecycle tied to the hosting context.
// Overlapping polls are not coalesced; instead every poll carries a
// monotonically increasing token and only the newest resolved result is
// applied, so a stale in-flight check can never overwrite a fresher one.
type Watcher struct {
	gate     *Gate
	interval time.Duration
	log      *logger.Logger

	mu        sync.RWMutex
	snapshot  Snapshot
	nextToken uint64
	applied   uint64

	cancel    context.CancelFunc
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewWatcher creates a watcher polling the gate at the given interval
func NewWatcher(g *Gate, interval time.Duration) *Watcher {
	return &Watcher{
		gate:     g,
		interval: interval,
		log:      logger.New(),
		snapshot: Snapshot{Checking: true},
	}
}

// Start launches the polling loop. It polls immediately, then on every
// tick, until Stop is called or ctx is canceled. A watcher is single-use:
// calls after the first are no-ops, matching Stop.
func (w *Watcher) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		w.cancel = cancel
		w.done = make(chan struct{})

		go func() {
			defer close(w.done)

			w.poll(ctx)

			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					// Each poll runs independently so a slow store call
					// never delays the next tick.
					go w.poll(ctx)
				}
			}
		}()
	})
}

// Stop terminates the polling loop and waits for it to exit. Idempotent;
// results of polls still in flight are discarded.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.done
		}
	})
}

// Refresh forces an immediate re-evaluation, used on route changes
func (w *Watcher) Refresh(ctx context.Context) {
	w.poll(ctx)
}

// Snapshot returns the latest resolved state
func (w *Watcher) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

func (w *Watcher) poll(ctx context.Context) {
	w.mu.Lock()
	w.nextToken++
	token := w.nextToken
	w.mu.Unlock()

	window := w.gate.ActiveWindow()

	if ctx.Err() != nil {
		// Torn down while the query was in flight; drop the result.
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if token <= w.applied {
		w.log.WithField("token", token).Debug("discarding stale maintenance poll result")
		return
	}
	w.applied = token
	w.snapshot = Snapshot{
		Window:    window,
		CheckedAt: time.Now(),
	}
}
