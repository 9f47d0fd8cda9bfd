package tracking_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/primes/domain/task"
	"github.com/helixml/primes/infrastructure/tracking"
)

// fakeReporter records all statuses delivered to it.
type fakeReporter struct {
	mu       sync.Mutex
	statuses []task.Status
	err      error
}

func (f *fakeReporter) OnChange(_ context.Context, status task.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
	return f.err
}

func (f *fakeReporter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.statuses)
}

func (f *fakeReporter) last() task.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[len(f.statuses)-1]
}

func TestTracker_NotifiesSubscribers(t *testing.T) {
	fake := &fakeReporter{}
	tracker := tracking.TrackerForOperation(task.OperationSearch, "run-1", nil, fake)
	ctx := context.Background()

	tracker.Notify(ctx)
	tracker.SetTotal(ctx, 4)
	tracker.Advance(ctx, "sub-range 0 done")

	require.Equal(t, 3, fake.count())
	assert.Equal(t, task.ReportingStateInProgress, fake.last().State())
	assert.Equal(t, 1, fake.last().Current())
	assert.Equal(t, 4, fake.last().Total())
	assert.Equal(t, "primes.search:run-1", fake.last().ID())
}

func TestTracker_ConcurrentAdvance(t *testing.T) {
	fake := &fakeReporter{}
	tracker := tracking.TrackerForOperation(task.OperationSearch, "", nil, fake)
	ctx := context.Background()
	tracker.SetTotal(ctx, 64)

	var wg sync.WaitGroup
	for range 64 {
		wg.Go(func() {
			tracker.Advance(ctx, "")
		})
	}
	wg.Wait()

	assert.Equal(t, 64, tracker.Status().Current())
	assert.Equal(t, 100.0, tracker.Status().CompletionPercent())
}

func TestTracker_CompleteAndFail(t *testing.T) {
	fake := &fakeReporter{}
	tracker := tracking.TrackerForOperation(task.OperationSearch, "", nil, fake)
	ctx := context.Background()

	tracker.SetTotal(ctx, 2)
	tracker.Complete(ctx, "Largest prime: 37")
	assert.Equal(t, task.ReportingStateCompleted, fake.last().State())
	assert.Equal(t, 2, fake.last().Current())

	// Terminal states are final.
	tracker.Fail(ctx, "too late")
	assert.Equal(t, task.ReportingStateCompleted, tracker.Status().State())
}

func TestTracker_SubscriberErrorDoesNotStopOthers(t *testing.T) {
	failing := &fakeReporter{err: errors.New("sink unavailable")}
	healthy := &fakeReporter{}
	tracker := tracking.TrackerForOperation(task.OperationSearch, "", nil, failing, healthy)

	tracker.Notify(context.Background())

	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}
