package primes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/helixml/primes/infrastructure/tracking"
	"github.com/helixml/primes/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	workers          int
	sharedPrimes     bool
	progressInterval time.Duration
	timeout          time.Duration
	logger           *slog.Logger
	reporters        []tracking.Reporter
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		workers:          config.DefaultWorkers,
		sharedPrimes:     config.DefaultSharedPrimes,
		progressInterval: config.DefaultProgressInterval,
		timeout:          config.DefaultTimeout,
		logger:           slog.Default(),
	}
}

func (c *clientConfig) validate() error {
	if c.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.workers)
	}
	return nil
}

// Option configures the Client.
type Option func(*clientConfig)

// WithWorkers sets the number of workers, which is also the number of
// sub-ranges each interval is split into. Zero uses one per logical CPU.
func WithWorkers(n int) Option {
	return func(c *clientConfig) {
		c.workers = n
	}
}

// WithSharedPrimes enables or disables the known-primes sequence shared by
// the workers of searches that start at 0. Enabled by default.
func WithSharedPrimes(enabled bool) Option {
	return func(c *clientConfig) {
		c.sharedPrimes = enabled
	}
}

// WithProgressInterval logs a progress snapshot at this interval while a
// search runs. Zero disables it.
func WithProgressInterval(d time.Duration) Option {
	return func(c *clientConfig) {
		c.progressInterval = d
	}
}

// WithTimeout bounds every search. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReporter subscribes a reporter to the progress of every search.
func WithReporter(r tracking.Reporter) Option {
	return func(c *clientConfig) {
		c.reporters = append(c.reporters, r)
	}
}

// WithAppConfig applies the search settings of an AppConfig.
func WithAppConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.workers = cfg.Workers()
		c.sharedPrimes = cfg.SharedPrimes()
		c.progressInterval = cfg.ProgressInterval()
		c.timeout = cfg.Timeout()
	}
}
