package primes

import (
	"errors"

	"github.com/helixml/primes/application/service"
	"github.com/helixml/primes/domain/prime"
)

// Sentinel errors returned by the library.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = service.ErrClientClosed

	// ErrInvalidInterval indicates start is greater than end.
	ErrInvalidInterval = prime.ErrInvalidInterval

	// ErrIncompleteAggregation indicates a worker failed before reporting.
	ErrIncompleteAggregation = service.ErrIncompleteAggregation

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("primes: worker count must not be negative")
)
