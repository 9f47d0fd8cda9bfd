package service

import (
	"context"
	"fmt"

	"github.com/helixml/primes/domain/prime"
)

// Aggregate receives exactly n partial results from rx and reduces them to the
// largest prime.
//
// It blocks until n messages have arrived, rx is closed or ctx is done. A
// closed channel before n messages yields ErrIncompleteAggregation. The
// returned count is the number of messages received.
func Aggregate[T prime.Unsigned](ctx context.Context, rx <-chan prime.Partial[T], n int) (prime.Result[T], int, error) {
	var result prime.Result[T]
	received := 0
	for received < n {
		select {
		case partial, ok := <-rx:
			if !ok {
				return result, received, fmt.Errorf("%w: received %d of %d results", ErrIncompleteAggregation, received, n)
			}
			received++
			result = result.Merge(partial)
		case <-ctx.Done():
			return result, received, fmt.Errorf("aggregate results: %w", ctx.Err())
		}
	}
	return result, received, nil
}
