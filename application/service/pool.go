package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/helixml/primes/domain/prime"
)

// Job computes the partial result of one sub-range.
type Job[T prime.Unsigned] func(ctx context.Context, r prime.SubRange[T]) (prime.Partial[T], error)

// Pool runs one task per sub-range with at most a fixed number of tasks
// executing at once.
type Pool[T prime.Unsigned] struct {
	workers int
	logger  *slog.Logger
}

// NewPool creates a Pool with the given concurrency bound. A non-positive
// bound uses the number of logical CPUs.
func NewPool[T prime.Unsigned](workers int, logger *slog.Logger) *Pool[T] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool[T]{workers: workers, logger: logger}
}

// Workers returns the concurrency bound.
func (p *Pool[T]) Workers() int { return p.workers }

// Batch is a running set of sub-range tasks.
type Batch[T prime.Unsigned] struct {
	results chan prime.Partial[T]
	done    chan struct{}
	err     error
}

// Results returns the channel carrying one partial result per successful
// task. It is buffered to the number of sub-ranges, so no task ever blocks on
// send, and it is closed once every task has terminated.
func (b *Batch[T]) Results() <-chan prime.Partial[T] { return b.results }

// Wait blocks until every task has terminated and returns the joined errors
// of the tasks that failed.
func (b *Batch[T]) Wait() error {
	<-b.done
	return b.err
}

// Start submits one task per sub-range and returns immediately.
//
// A task that fails or panics sends nothing; its error is reported by Wait.
// Failures do not cancel the other tasks.
func (p *Pool[T]) Start(ctx context.Context, ranges []prime.SubRange[T], job Job[T]) *Batch[T] {
	batch := &Batch[T]{
		results: make(chan prime.Partial[T], len(ranges)),
		done:    make(chan struct{}),
	}

	var g errgroup.Group
	g.SetLimit(p.workers)

	go func() {
		for _, r := range ranges {
			g.Go(func() error {
				partial, err := p.executeWithRecovery(ctx, job, r)
				if err != nil {
					p.logger.Error("sub-range failed",
						slog.Int("index", r.Index),
						slog.String("error", err.Error()),
					)
					return fmt.Errorf("sub-range %d [%d, %d]: %w", r.Index, r.Start, r.End, err)
				}
				batch.results <- partial
				return nil
			})
		}
		batch.err = g.Wait()
		close(batch.results)
		close(batch.done)
	}()

	return batch
}

func (p *Pool[T]) executeWithRecovery(ctx context.Context, job Job[T], r prime.SubRange[T]) (partial prime.Partial[T], err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("worker panicked: %v", rec)
		}
	}()
	return job(ctx, r)
}
