// Package primes finds the largest prime in an interval by splitting it into
// contiguous sub-ranges and searching them on a bounded pool of workers.
//
// Basic usage:
//
//	client, err := primes.New(primes.WithWorkers(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Search.Largest(ctx, 10, 100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Found {
//	    fmt.Println(result.Prime) // 97
//	}
//
// For one-off calls, LargestPrime uses the defaults.
package primes

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/helixml/primes/application/service"
)

// Client is the main entry point for the primes library.
//
//	client.Search.Largest(ctx, 20, 40)
//	client.Search.Run(ctx, 0, 1_000_000)
//	client.Search.IsPrime(ctx, 7919)
type Client struct {
	Search service.Search

	engine *service.Engine[uint64]
	logger *slog.Logger
	closed atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := &Client{logger: cfg.logger}
	client.engine = service.NewEngine[uint64](
		service.WithWorkers(cfg.workers),
		service.WithSharedPrimes(cfg.sharedPrimes),
		service.WithProgressInterval(cfg.progressInterval),
		service.WithEngineLogger(cfg.logger),
		service.WithReporters(cfg.reporters...),
	)
	client.Search = service.NewSearch(client.engine, cfg.timeout, &client.closed, cfg.logger)

	cfg.logger.Debug("primes client created",
		slog.Int("workers", client.engine.Workers()),
		slog.Bool("shared_primes", client.engine.SharedPrimes()),
	)
	return client, nil
}

// Close marks the client closed. Later calls through Search fail with
// ErrClientClosed. Closing twice returns ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	c.logger.Debug("primes client closed")
	return nil
}

// Workers returns the number of workers each search uses.
func (c *Client) Workers() int {
	return c.engine.Workers()
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// LargestPrime returns the largest prime in [start, end] using one worker per
// CPU, or false if the interval holds none. It requires start <= end and
// reports false otherwise.
func LargestPrime(start, end uint64) (uint64, bool) {
	client, err := New(WithProgressInterval(0))
	if err != nil {
		return 0, false
	}
	defer func() { _ = client.Close() }()

	result, err := client.Search.Largest(context.Background(), start, end)
	if err != nil {
		return 0, false
	}
	return result.Prime, result.Found
}
