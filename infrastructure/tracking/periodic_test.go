package tracking_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/primes/domain/task"
	"github.com/helixml/primes/infrastructure/tracking"
)

// syncBuffer guards a bytes.Buffer shared with a background goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) snapshot() *bytes.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.NewBuffer(append([]byte(nil), b.buf.Bytes()...))
}

func TestPeriodic_Report(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	tracker := tracking.TrackerForOperation(task.OperationSearch, "run-7", logger)
	tracker.SetTotal(context.Background(), 4)

	periodic := tracking.NewPeriodic(tracker, time.Hour, logger, func() slog.Attr {
		return slog.Int("known_primes", 25)
	})
	periodic.Report(context.Background())

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "search progress", lines[0]["msg"])
	assert.Equal(t, "primes.search:run-7", lines[0]["id"])
	assert.Equal(t, float64(25), lines[0]["known_primes"])
	assert.Equal(t, float64(4), lines[0]["total"])
}

func TestPeriodic_TicksUntilStopped(t *testing.T) {
	buf := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	tracker := tracking.TrackerForOperation(task.OperationSearch, "", logger)

	periodic := tracking.NewPeriodic(tracker, 5*time.Millisecond, logger)
	periodic.Start(context.Background())

	require.Eventually(t, func() bool {
		return len(decodeLines(t, buf.snapshot())) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	periodic.Stop()
	stopped := len(decodeLines(t, buf.snapshot()))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, len(decodeLines(t, buf.snapshot())))
}

func TestPeriodic_DisabledIsNoop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	tracker := tracking.TrackerForOperation(task.OperationSearch, "", logger)

	periodic := tracking.NewPeriodic(tracker, 0, logger)
	periodic.Start(context.Background())
	periodic.Stop()

	assert.Zero(t, buf.Len())
}

func TestPeriodic_ReportNotifiesReporters(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	fake := &fakeReporter{}
	tracker := tracking.TrackerForOperation(task.OperationSearch, "run-8", logger, fake)
	tracker.SetTotal(context.Background(), 2)
	tracker.Advance(context.Background(), "")
	before := fake.count()

	tracking.NewPeriodic(tracker, time.Hour, logger).Report(context.Background())

	require.Equal(t, before+1, fake.count())
	assert.Equal(t, 1, fake.last().Current())
	assert.Equal(t, "primes.search:run-8", fake.last().ID())
}
