// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost             = "127.0.0.1"
	DefaultPort             = 8080
	DefaultLogLevel         = "INFO"
	DefaultWorkers          = 0 // logical CPU count
	DefaultSharedPrimes     = true
	DefaultProgressInterval = 10 * time.Second
	DefaultTimeout          = time.Duration(0)
	DefaultMaxInterval      = uint64(1_000_000) // HTTP and MCP only
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// OutputFormat selects how search reports are written.
type OutputFormat string

// OutputFormat values.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat parses an output format, case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	case OutputYAML, "yml":
		return OutputYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host             string
	port             int
	logLevel         string
	logFormat        LogFormat
	workers          int
	sharedPrimes     bool
	progressInterval time.Duration
	timeout          time.Duration
	output           OutputFormat
	corsOrigins      []string
	maxInterval      uint64
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:             DefaultHost,
		port:             DefaultPort,
		logLevel:         DefaultLogLevel,
		logFormat:        LogFormatPretty,
		workers:          DefaultWorkers,
		sharedPrimes:     DefaultSharedPrimes,
		progressInterval: DefaultProgressInterval,
		timeout:          DefaultTimeout,
		output:           OutputText,
		corsOrigins:      []string{},
		maxInterval:      DefaultMaxInterval,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// Workers returns the configured number of workers; 0 means one per CPU.
func (c AppConfig) Workers() int { return c.workers }

// EffectiveWorkers returns the number of workers a search will use.
func (c AppConfig) EffectiveWorkers() int {
	if c.workers > 0 {
		return c.workers
	}
	return runtime.NumCPU()
}

// SharedPrimes reports whether searches from 0 share known primes.
func (c AppConfig) SharedPrimes() bool { return c.sharedPrimes }

// ProgressInterval returns the progress logging interval; 0 disables it.
func (c AppConfig) ProgressInterval() time.Duration { return c.progressInterval }

// Timeout returns the per-search time limit; 0 means none.
func (c AppConfig) Timeout() time.Duration { return c.timeout }

// Output returns the report output format.
func (c AppConfig) Output() OutputFormat { return c.output }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// MaxInterval returns the widest interval the HTTP API and MCP tools accept;
// 0 means no limit.
func (c AppConfig) MaxInterval() uint64 { return c.maxInterval }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithWorkers sets the number of workers. Negative values are ignored.
func WithWorkers(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n >= 0 {
			c.workers = n
		}
	}
}

// WithSharedPrimes enables or disables the shared known-primes sequence.
func WithSharedPrimes(enabled bool) AppConfigOption {
	return func(c *AppConfig) { c.sharedPrimes = enabled }
}

// WithProgressInterval sets the progress logging interval.
func WithProgressInterval(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d >= 0 {
			c.progressInterval = d
		}
	}
}

// WithTimeout sets the per-search time limit.
func WithTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithOutput sets the report output format.
func WithOutput(format OutputFormat) AppConfigOption {
	return func(c *AppConfig) { c.output = format }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithMaxInterval sets the widest interval served over HTTP and MCP.
func WithMaxInterval(n uint64) AppConfigOption {
	return func(c *AppConfig) { c.maxInterval = n }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("workers", c.EffectiveWorkers()),
		slog.Bool("shared_primes", c.sharedPrimes),
		slog.Duration("progress_interval", c.progressInterval),
		slog.Duration("timeout", c.timeout),
		slog.Uint64("max_interval", c.maxInterval),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.String("output", string(c.output)),
	}
}

// ParseList parses a comma-separated list, dropping blank entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
