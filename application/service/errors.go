package service

import "errors"

var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("primes: client is closed")

	// ErrIncompleteAggregation indicates the result channel closed before every
	// sub-range reported, usually because a worker failed.
	ErrIncompleteAggregation = errors.New("primes: aggregation incomplete")

	// ErrAccumulatorBroken indicates an earlier worker failed while holding the
	// shared known-primes sequence, so the sequence can no longer be trusted.
	ErrAccumulatorBroken = errors.New("primes: known primes accumulator broken")

	// ErrIntervalTooLarge indicates an interval wider than the configured limit.
	ErrIntervalTooLarge = errors.New("interval is too large")
)
