package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/helixml/primes/domain/prime"
)

// KnownPrimes is the ascending sequence of primes shared by the workers of a
// search that starts at 0.
//
// Access is granted in sub-range order: the worker holding index i runs only
// after every lower index has merged its primes, so it always sees every prime
// below its own start. A worker keeps access for the whole of its computation.
type KnownPrimes[T prime.Unsigned] struct {
	mu     sync.Mutex
	primes []T
	broken bool

	turns []chan struct{}
}

// NewKnownPrimes creates an empty accumulator for n sub-ranges.
func NewKnownPrimes[T prime.Unsigned](n int) *KnownPrimes[T] {
	if n < 1 {
		n = 1
	}
	turns := make([]chan struct{}, n)
	for i := range turns {
		turns[i] = make(chan struct{})
	}
	close(turns[0])
	return &KnownPrimes[T]{turns: turns}
}

// Len returns the number of primes accumulated so far.
func (k *KnownPrimes[T]) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.primes)
}

// Visit waits for the turn of sub-range index, calls compute with the current
// sequence and merges the primes it returns. The partial result is the
// largest accumulated prime.
//
// If compute panics the accumulator is marked broken before the turn passes
// on, and every later Visit fails with ErrAccumulatorBroken.
func (k *KnownPrimes[T]) Visit(ctx context.Context, index int, compute func(known []T) []T) (prime.Partial[T], error) {
	if index < 0 || index >= len(k.turns) {
		return prime.Partial[T]{}, fmt.Errorf("sub-range index %d out of range [0, %d)", index, len(k.turns))
	}

	select {
	case <-k.turns[index]:
	case <-ctx.Done():
		return prime.Partial[T]{}, fmt.Errorf("wait for known primes: %w", ctx.Err())
	}

	completed := false
	defer func() {
		if !completed {
			k.mu.Lock()
			k.broken = true
			k.mu.Unlock()
		}
		k.release(index)
	}()

	k.mu.Lock()
	if k.broken {
		k.mu.Unlock()
		completed = true
		return prime.Partial[T]{}, ErrAccumulatorBroken
	}
	known := k.primes
	k.mu.Unlock()

	found := compute(known)

	k.mu.Lock()
	k.primes = mergeAscending(k.primes, found)
	largest, ok := prime.Largest(k.primes)
	k.mu.Unlock()

	completed = true
	return prime.Partial[T]{Index: index, Prime: largest, Found: ok}, nil
}

func (k *KnownPrimes[T]) release(index int) {
	if next := index + 1; next < len(k.turns) {
		close(k.turns[next])
	}
}

// mergeAscending merges two ascending slices into a strictly increasing one.
func mergeAscending[T prime.Unsigned](a, b []T) []T {
	merged := make([]T, 0, len(a)+len(b))
	push := func(v T) {
		if n := len(merged); n > 0 && merged[n-1] >= v {
			return
		}
		merged = append(merged, v)
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			push(a[i])
			i++
		} else {
			push(b[j])
			j++
		}
	}
	for ; i < len(a); i++ {
		push(a[i])
	}
	for ; j < len(b); j++ {
		push(b[j])
	}
	return merged
}
