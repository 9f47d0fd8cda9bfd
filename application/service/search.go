// Package service provides application layer services that orchestrate domain operations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/helixml/primes/domain/prime"
	"github.com/helixml/primes/domain/task"
)

// Report describes one completed largest-prime search.
type Report struct {
	RunID        string `json:"run_id" yaml:"run_id"`
	Start        uint64 `json:"start" yaml:"start"`
	End          uint64 `json:"end" yaml:"end"`
	Workers      int    `json:"workers" yaml:"workers"`
	SubRanges    int    `json:"sub_ranges" yaml:"sub_ranges"`
	JobSize      uint64 `json:"job_size" yaml:"job_size"`
	LastJobSize  uint64 `json:"last_job_size" yaml:"last_job_size"`
	SharedPrimes bool   `json:"shared_primes" yaml:"shared_primes"`
	KnownPrimes  int    `json:"known_primes" yaml:"known_primes"`
	Found        bool   `json:"found" yaml:"found"`
	Prime        uint64 `json:"prime,omitempty" yaml:"prime,omitempty"`
	DurationMS   int64  `json:"duration_ms" yaml:"duration_ms"`
	Message      string `json:"message" yaml:"message"`
}

// Result returns the search answer.
func (r Report) Result() prime.Result[uint64] {
	return prime.Result[uint64]{Prime: r.Prime, Found: r.Found}
}

// Describe returns the human-readable answer for a search over [start, end].
func Describe(start, end uint64, result prime.Result[uint64]) string {
	switch {
	case result.Found:
		return fmt.Sprintf("Largest prime: %d", result.Prime)
	case start == end:
		return fmt.Sprintf("%d is not a prime", start)
	default:
		return fmt.Sprintf("No prime number found between %d and %d", start, end)
	}
}

// Search runs largest-prime searches over uint64 intervals.
type Search struct {
	engine      *Engine[uint64]
	timeout     time.Duration
	maxInterval uint64
	closed      *atomic.Bool
	logger      *slog.Logger
}

// NewSearch creates a new Search service. A positive timeout bounds every
// search; closed, when non-nil, makes the service reject calls once set.
func NewSearch(engine *Engine[uint64], timeout time.Duration, closed *atomic.Bool, logger *slog.Logger) Search {
	if logger == nil {
		logger = slog.Default()
	}
	return Search{
		engine:  engine,
		timeout: timeout,
		closed:  closed,
		logger:  logger,
	}
}

// Workers returns the number of workers each search uses.
func (s Search) Workers() int { return s.engine.Workers() }

// WithMaxInterval returns a copy of s that rejects intervals wider than n
// with ErrIntervalTooLarge. Zero removes the limit.
func (s Search) WithMaxInterval(n uint64) Search {
	s.maxInterval = n
	return s
}

// MaxInterval returns the widest interval s accepts, or 0 for no limit.
func (s Search) MaxInterval() uint64 { return s.maxInterval }

// Run searches [start, end] and returns the full report.
func (s Search) Run(ctx context.Context, start, end uint64) (Report, error) {
	if s.closed != nil && s.closed.Load() {
		return Report{}, ErrClientClosed
	}

	iv, err := prime.NewInterval(start, end)
	if err != nil {
		return Report{}, err
	}
	if s.maxInterval > 0 && iv.Size() > s.maxInterval {
		return Report{}, fmt.Errorf("%w: %d > %d", ErrIntervalTooLarge, iv.Size(), s.maxInterval)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	runID := uuid.NewString()
	base, _ := prime.JobSizes(iv, s.engine.Workers())
	logger := s.logger.With(slog.String("run_id", runID))
	logger.Info("Number of workers", slog.Int("workers", s.engine.Workers()))
	logger.Info("Size of each job", slog.Uint64("job_size", base), slog.String("interval", iv.String()))

	began := time.Now()
	outcome, err := s.engine.Run(ctx, runID, iv)
	if err != nil {
		return Report{}, fmt.Errorf("search %s: %w", iv, err)
	}

	report := Report{
		RunID:        runID,
		Start:        start,
		End:          end,
		Workers:      s.engine.Workers(),
		SubRanges:    outcome.SubRanges,
		JobSize:      outcome.BaseJobSize,
		LastJobSize:  outcome.LastJobSize,
		SharedPrimes: outcome.SharedPrimes,
		KnownPrimes:  outcome.KnownPrimes,
		Found:        outcome.Result.Found,
		Prime:        outcome.Result.Prime,
		DurationMS:   time.Since(began).Milliseconds(),
		Message:      Describe(start, end, outcome.Result),
	}
	logger.Info("search finished",
		slog.String("message", report.Message),
		slog.Int64("duration_ms", report.DurationMS),
	)
	return report, nil
}

// Largest returns the largest prime in [start, end].
func (s Search) Largest(ctx context.Context, start, end uint64) (prime.Result[uint64], error) {
	report, err := s.Run(ctx, start, end)
	if err != nil {
		return prime.Result[uint64]{}, err
	}
	return report.Result(), nil
}

// IsPrime reports whether n is prime.
func (s Search) IsPrime(ctx context.Context, n uint64) (bool, error) {
	if s.closed != nil && s.closed.Load() {
		return false, ErrClientClosed
	}

	tracker := s.engine.track(task.OperationIsPrime, uuid.NewString(), s.logger)
	tracker.SetTotal(ctx, 1)
	ok := prime.IsPrime(n)
	if ok {
		tracker.Complete(ctx, fmt.Sprintf("%d is a prime", n))
	} else {
		tracker.Complete(ctx, fmt.Sprintf("%d is not a prime", n))
	}
	return ok, nil
}
