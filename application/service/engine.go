package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/helixml/primes/domain/prime"
	"github.com/helixml/primes/domain/task"
	"github.com/helixml/primes/infrastructure/tracking"
)

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	workers          int
	sharedPrimes     bool
	progressInterval time.Duration
	logger           *slog.Logger
	reporters        []tracking.Reporter
}

func newEngineConfig() *engineConfig {
	return &engineConfig{
		workers:      runtime.NumCPU(),
		sharedPrimes: true,
		logger:       slog.Default(),
	}
}

// WithWorkers sets the number of workers and sub-ranges. Non-positive values
// keep the logical CPU count.
func WithWorkers(n int) EngineOption {
	return func(c *engineConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSharedPrimes enables or disables the known-primes accumulator for
// searches starting at 0.
func WithSharedPrimes(enabled bool) EngineOption {
	return func(c *engineConfig) {
		c.sharedPrimes = enabled
	}
}

// WithProgressInterval logs a progress snapshot at the given interval while a
// search runs. Zero disables it.
func WithProgressInterval(d time.Duration) EngineOption {
	return func(c *engineConfig) {
		c.progressInterval = d
	}
}

// WithEngineLogger sets the logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReporters subscribes reporters to the progress of every search.
func WithReporters(reporters ...tracking.Reporter) EngineOption {
	return func(c *engineConfig) {
		c.reporters = append(c.reporters, reporters...)
	}
}

// Outcome describes a finished search over an interval.
type Outcome[T prime.Unsigned] struct {
	Result       prime.Result[T]
	SubRanges    int
	BaseJobSize  T
	LastJobSize  T
	SharedPrimes bool
	KnownPrimes  int
}

// Engine finds the largest prime in an interval by partitioning it across a
// bounded pool of workers.
type Engine[T prime.Unsigned] struct {
	cfg *engineConfig
}

// NewEngine creates an Engine.
func NewEngine[T prime.Unsigned](opts ...EngineOption) *Engine[T] {
	cfg := newEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Engine[T]{cfg: cfg}
}

// Workers returns the number of workers.
func (e *Engine[T]) Workers() int { return e.cfg.workers }

// SharedPrimes reports whether the known-primes accumulator is enabled.
func (e *Engine[T]) SharedPrimes() bool { return e.cfg.sharedPrimes }

// Run searches iv for its largest prime.
//
// The interval is split into one sub-range per worker. When iv starts at 0 and
// shared primes are enabled, workers test candidates against the primes found
// by the lower sub-ranges. The runID tags the progress of this run.
func (e *Engine[T]) Run(ctx context.Context, runID string, iv prime.Interval[T]) (Outcome[T], error) {
	if iv.Start > iv.End {
		return Outcome[T]{}, fmt.Errorf("%w: %d > %d", prime.ErrInvalidInterval, iv.Start, iv.End)
	}

	logger := e.cfg.logger.With(slog.String("run_id", runID))
	ranges := prime.Partition(iv, e.cfg.workers)
	base, last := prime.JobSizes(iv, e.cfg.workers)

	outcome := Outcome[T]{
		SubRanges:   len(ranges),
		BaseJobSize: base,
		LastJobSize: last,
	}

	var known *KnownPrimes[T]
	var gauges []tracking.Gauge
	if e.cfg.sharedPrimes && iv.Start == 0 {
		known = NewKnownPrimes[T](len(ranges))
		outcome.SharedPrimes = true
		gauges = append(gauges, func() slog.Attr {
			return slog.Int("known_primes", known.Len())
		})
	}

	tracker := e.track(task.OperationSearch, runID, logger)
	tracker.SetTotal(ctx, len(ranges))
	if err := ctx.Err(); err != nil {
		tracker.Fail(ctx, err.Error())
		return Outcome[T]{}, fmt.Errorf("start search: %w", err)
	}

	periodic := tracking.NewPeriodic(tracker, e.cfg.progressInterval, logger, gauges...)
	periodic.Start(ctx)
	defer periodic.Stop()

	job := func(ctx context.Context, r prime.SubRange[T]) (prime.Partial[T], error) {
		sub := e.track(task.OperationSearchSubRange, fmt.Sprintf("%s/%d", runID, r.Index), logger)
		sub.SetTotal(ctx, 1)

		var partial prime.Partial[T]
		if known != nil {
			var err error
			partial, err = known.Visit(ctx, r.Index, func(k []T) []T {
				return prime.RangeKnown(r.Start, r.End, k)
			})
			if err != nil {
				sub.Fail(ctx, err.Error())
				return prime.Partial[T]{}, err
			}
		} else {
			largest, ok := prime.Largest(prime.Range(r.Start, r.End))
			partial = prime.Partial[T]{Index: r.Index, Prime: largest, Found: ok}
		}

		sub.Advance(ctx, fmt.Sprintf("[%d, %d]", r.Start, r.End))
		sub.Complete(ctx, "")
		tracker.Advance(ctx, fmt.Sprintf("sub-range %d of %d done", r.Index+1, len(ranges)))
		return partial, nil
	}

	pool := NewPool[T](e.cfg.workers, logger)
	logger.Debug("starting workers",
		slog.Int("workers", pool.Workers()),
		slog.Int("sub_ranges", len(ranges)),
		slog.Bool("shared_primes", known != nil),
	)
	batch := pool.Start(ctx, ranges, job)
	result, _, err := Aggregate(ctx, batch.Results(), len(ranges))
	if errors.Is(err, ErrIncompleteAggregation) {
		err = errors.Join(err, batch.Wait())
	}
	if err != nil {
		tracker.Fail(ctx, err.Error())
		return Outcome[T]{}, err
	}

	outcome.Result = result
	if known != nil {
		outcome.KnownPrimes = known.Len()
	}
	tracker.Complete(ctx, "")
	return outcome, nil
}

// track creates a tracker for op subscribed to the engine's reporters.
func (e *Engine[T]) track(op task.Operation, runID string, logger *slog.Logger) *tracking.Tracker {
	return tracking.TrackerForOperation(op, runID, logger, e.cfg.reporters...)
}
