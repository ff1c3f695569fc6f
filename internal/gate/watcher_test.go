package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"saas-admin-backend/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWindowStore struct {
	mu      sync.Mutex
	windows []models.MaintenanceWindow
	calls   int
}

func (s *countingWindowStore) GetEffectiveWindows(now time.Time) ([]models.MaintenanceWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.windows, nil
}

func (s *countingWindowStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *countingWindowStore) setWindows(windows []models.MaintenanceWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = windows
}

func TestWatcher_InitialSnapshotIsChecking(t *testing.T) {
	g := New(&countingWindowStore{})
	w := NewWatcher(g, time.Hour)

	snap := w.Snapshot()
	assert.True(t, snap.Checking)
	assert.Nil(t, snap.Window)
}

func TestWatcher_StartPollsImmediately(t *testing.T) {
	store := &countingWindowStore{}
	g := New(store)
	w := NewWatcher(g, time.Hour)

	w.Start(context.Background())
	defer w.Stop()

	require.Eventually(t, func() bool {
		return !w.Snapshot().Checking
	}, time.Second, 10*time.Millisecond)

	assert.GreaterOrEqual(t, store.callCount(), 1)
}

func TestWatcher_SnapshotReflectsActiveWindow(t *testing.T) {
	now := time.Now().UTC()
	store := &countingWindowStore{}
	store.setWindows([]models.MaintenanceWindow{windowAround(now)})
	g := New(store)
	w := NewWatcher(g, time.Hour)

	w.Start(context.Background())
	defer w.Stop()

	require.Eventually(t, func() bool {
		snap := w.Snapshot()
		return !snap.Checking && snap.Window != nil
	}, time.Second, 10*time.Millisecond)
}

func TestWatcher_PollsOnInterval(t *testing.T) {
	store := &countingWindowStore{}
	g := New(store)
	w := NewWatcher(g, 20*time.Millisecond)

	w.Start(context.Background())
	defer w.Stop()

	require.Eventually(t, func() bool {
		return store.callCount() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestWatcher_RefreshForcesReevaluation(t *testing.T) {
	store := &countingWindowStore{}
	g := New(store)
	w := NewWatcher(g, time.Hour)

	w.Start(context.Background())
	defer w.Stop()

	require.Eventually(t, func() bool {
		return !w.Snapshot().Checking
	}, time.Second, 10*time.Millisecond)
	before := store.callCount()

	now := time.Now().UTC()
	store.setWindows([]models.MaintenanceWindow{windowAround(now)})
	w.Refresh(context.Background())

	assert.Greater(t, store.callCount(), before)
	assert.NotNil(t, w.Snapshot().Window)
}

func TestWatcher_StaleResultsAreDiscarded(t *testing.T) {
	store := &countingWindowStore{}
	g := New(store)
	w := NewWatcher(g, time.Hour)

	// Simulate an old in-flight poll losing the race: a newer token has
	// already been applied, so applying the stale one must be a no-op.
	ctx := context.Background()
	w.poll(ctx)
	first := w.Snapshot()

	w.mu.Lock()
	w.applied = w.nextToken + 10
	w.mu.Unlock()

	now := time.Now().UTC()
	store.setWindows([]models.MaintenanceWindow{windowAround(now)})
	w.poll(ctx)

	snap := w.Snapshot()
	assert.Equal(t, first.Window, snap.Window)
	assert.Equal(t, first.CheckedAt, snap.CheckedAt)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	g := New(&countingWindowStore{})
	w := NewWatcher(g, time.Hour)

	w.Start(context.Background())
	w.Stop()
	w.Stop()
}

func TestWatcher_StartIsSingleUse(t *testing.T) {
	store := &countingWindowStore{}
	g := New(store)
	w := NewWatcher(g, time.Hour)

	w.Start(context.Background())
	first := w.done

	// A second Start must not replace the running loop's lifecycle state;
	// otherwise Stop would tear down the new loop and orphan the first.
	w.Start(context.Background())
	assert.True(t, first == w.done)

	w.Stop()
	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("polling loop did not exit after Stop")
	}
}

func TestWatcher_ContextCancellationStopsLoop(t *testing.T) {
	store := &countingWindowStore{}
	g := New(store)
	w := NewWatcher(g, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.Eventually(t, func() bool {
		return store.callCount() >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("polling loop did not exit after context cancellation")
	}

	settled := store.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, store.callCount(), settled+1)
}

func TestWatcher_ResultAfterCancellationIsDropped(t *testing.T) {
	store := &countingWindowStore{}
	g := New(store)
	w := NewWatcher(g, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	now := time.Now().UTC()
	store.setWindows([]models.MaintenanceWindow{windowAround(now)})
	w.poll(ctx)

	snap := w.Snapshot()
	assert.True(t, snap.Checking)
	assert.Nil(t, snap.Window)
}
