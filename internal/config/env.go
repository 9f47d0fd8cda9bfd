package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PRIMES"

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables with the PRIMES_ prefix.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: PRIMES_HOST (default: 127.0.0.1)
	Host string `envconfig:"HOST" default:"127.0.0.1"`

	// Port is the server port to listen on.
	// Env: PRIMES_PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: PRIMES_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: PRIMES_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Workers is the number of workers and sub-ranges per search.
	// Env: PRIMES_WORKERS (default: 0, one per logical CPU)
	Workers int `envconfig:"WORKERS" default:"0"`

	// SharedPrimes enables the known-primes sequence for searches from 0.
	// Env: PRIMES_SHARED_PRIMES (default: true)
	SharedPrimes bool `envconfig:"SHARED_PRIMES" default:"true"`

	// ProgressInterval is the progress logging interval in seconds.
	// Env: PRIMES_PROGRESS_INTERVAL (default: 10, 0 disables)
	ProgressInterval float64 `envconfig:"PROGRESS_INTERVAL" default:"10"`

	// Timeout bounds each search, in seconds.
	// Env: PRIMES_TIMEOUT (default: 0, no limit)
	Timeout float64 `envconfig:"TIMEOUT" default:"0"`

	// Output is the report format (text, json or yaml).
	// Env: PRIMES_OUTPUT (default: text)
	Output string `envconfig:"OUTPUT" default:"text"`

	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: PRIMES_CORS_ORIGINS
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// MaxInterval caps end - start for HTTP and MCP searches.
	// Env: PRIMES_MAX_INTERVAL (default: 1000000, 0 disables)
	MaxInterval uint64 `envconfig:"MAX_INTERVAL" default:"1000000"`
}

// LoadFromEnv loads configuration from PRIMES_ environment variables.
func LoadFromEnv() (EnvConfig, error) {
	return LoadFromEnvWithPrefix(EnvPrefix)
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() (AppConfig, error) {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(strings.ToUpper(e.LogLevel)))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(ParseLogFormat(e.LogFormat)))
	}

	cfg = applyOption(cfg, WithWorkers(e.Workers))
	cfg = applyOption(cfg, WithSharedPrimes(e.SharedPrimes))
	cfg = applyOption(cfg, WithProgressInterval(seconds(e.ProgressInterval)))
	cfg = applyOption(cfg, WithTimeout(seconds(e.Timeout)))

	output, err := ParseOutputFormat(e.Output)
	if err != nil {
		return AppConfig{}, err
	}
	cfg = applyOption(cfg, WithOutput(output))

	cfg = applyOption(cfg, WithMaxInterval(e.MaxInterval))

	if e.CORSOrigins != "" {
		cfg = applyOption(cfg, WithCORSOrigins(ParseList(e.CORSOrigins)))
	}

	return cfg, nil
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// ParseLogFormat parses a log format string.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
