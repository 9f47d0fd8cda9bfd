package tracking

import (
	"context"
	"log/slog"
	"sync"

	"github.com/helixml/primes/domain/task"
)

// Tracker holds the status of one operation and propagates every change to
// its subscribers. It is safe for concurrent use by many workers.
type Tracker struct {
	status      task.Status
	subscribers []Reporter
	logger      *slog.Logger
	mu          sync.RWMutex
}

// NewTracker creates a new progress tracker wrapping the given Status.
func NewTracker(status task.Status, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		status:      status,
		subscribers: make([]Reporter, 0),
		logger:      logger,
	}
}

// TrackerForOperation creates a Tracker for the given operation and run.
func TrackerForOperation(operation task.Operation, runID string, logger *slog.Logger, reporters ...Reporter) *Tracker {
	t := NewTracker(task.NewStatus(operation, runID), logger)
	for _, r := range reporters {
		t.Subscribe(r)
	}
	return t
}

// Status returns a copy of the current Status.
func (t *Tracker) Status() task.Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Subscribe adds a reporter to receive status change notifications.
func (t *Tracker) Subscribe(reporter Reporter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, reporter)
}

// SetTotal sets the number of units of work.
func (t *Tracker) SetTotal(ctx context.Context, total int) {
	t.update(ctx, func(s task.Status) task.Status { return s.SetTotal(total) })
}

// Advance marks one more unit of work as finished.
func (t *Tracker) Advance(ctx context.Context, message string) {
	t.update(ctx, func(s task.Status) task.Status { return s.SetCurrent(s.Current()+1, message) })
}

// Fail marks the operation as failed with an error message.
func (t *Tracker) Fail(ctx context.Context, errMsg string) {
	t.update(ctx, func(s task.Status) task.Status { return s.Fail(errMsg) })
}

// Complete marks the operation as completed.
func (t *Tracker) Complete(ctx context.Context, message string) {
	t.update(ctx, func(s task.Status) task.Status { return s.Complete(message) })
}

// Notify announces the current status to all subscribers.
func (t *Tracker) Notify(ctx context.Context) {
	t.notifySubscribers(ctx, t.Status())
}

func (t *Tracker) update(ctx context.Context, apply func(task.Status) task.Status) {
	t.mu.Lock()
	t.status = apply(t.status)
	status := t.status
	t.mu.Unlock()

	t.notifySubscribers(ctx, status)
}

// notifySubscribers sends the status update to all registered reporters.
func (t *Tracker) notifySubscribers(ctx context.Context, status task.Status) {
	t.mu.RLock()
	subscribers := make([]Reporter, len(t.subscribers))
	copy(subscribers, t.subscribers)
	t.mu.RUnlock()

	for _, subscriber := range subscribers {
		if err := subscriber.OnChange(ctx, status); err != nil {
			t.logger.Error("failed to notify subscriber",
				slog.String("error", err.Error()),
				slog.String("operation", status.Operation().String()),
			)
		}
	}
}
