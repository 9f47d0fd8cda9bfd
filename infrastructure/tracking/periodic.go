package tracking

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Gauge contributes an extra attribute to each periodic progress line, such
// as the current size of a shared known-primes sequence.
type Gauge func() slog.Attr

// Periodic logs a snapshot of a Tracker at a fixed interval until stopped.
type Periodic struct {
	tracker  *Tracker
	logger   *slog.Logger
	interval time.Duration
	gauges   []Gauge

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPeriodic creates a Periodic reporter for the tracker. A non-positive
// interval disables it.
func NewPeriodic(tracker *Tracker, interval time.Duration, logger *slog.Logger, gauges ...Gauge) *Periodic {
	if logger == nil {
		logger = slog.Default()
	}
	return &Periodic{
		tracker:  tracker,
		logger:   logger,
		interval: interval,
		gauges:   gauges,
	}
}

// Start begins periodic reporting in a background goroutine.
// If disabled, this is a no-op.
func (p *Periodic) Start(ctx context.Context) {
	if p.interval <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Go(func() {
		p.run(ctx)
	})
}

// Stop cancels the background goroutine and waits for it to finish.
func (p *Periodic) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *Periodic) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Report(ctx)
		}
	}
}

// Report logs one progress line immediately and re-announces the tracker's
// status to its reporters.
func (p *Periodic) Report(ctx context.Context) {
	status := p.tracker.Status()
	attrs := []slog.Attr{
		slog.String("id", status.ID()),
		slog.String("state", string(status.State())),
		slog.Int("current", status.Current()),
		slog.Int("total", status.Total()),
		slog.Float64("completion_percent", status.CompletionPercent()),
		slog.Duration("running_for", time.Since(status.CreatedAt())),
	}
	for _, gauge := range p.gauges {
		attrs = append(attrs, gauge())
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "search progress", attrs...)
	p.tracker.Notify(ctx)
}
