// Package main is the entry point for the primes CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/primes"
	"github.com/helixml/primes/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	envFile   string
	logLevel  string
	logFormat string
}

// searchFlags override the search settings loaded from the environment.
type searchFlags struct {
	workers        int
	noSharedPrimes bool
	timeout        time.Duration
	output         string
}

func rootCmd() *cobra.Command {
	var (
		global globalFlags
		search searchFlags
	)

	cmd := &cobra.Command{
		Use:   "primes [start] [end]",
		Short: "Find the largest prime in an interval",
		Long: `Find the largest prime in [start, end] by splitting the interval into
contiguous sub-ranges and searching them in parallel.

end defaults to start, and both default to 0.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  PRIMES_WORKERS               Number of workers, 0 for one per CPU (default: 0)
  PRIMES_SHARED_PRIMES         Share known primes between workers (default: true)
  PRIMES_PROGRESS_INTERVAL     Seconds between progress logs, 0 disables (default: 10)
  PRIMES_TIMEOUT               Search timeout in seconds, 0 for none (default: 0)
  PRIMES_OUTPUT                Output format: text, json, yaml (default: text)
  PRIMES_LOG_LEVEL             Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  PRIMES_LOG_FORMAT            Log format: pretty, json (default: pretty)
  PRIMES_HOST                  Server host to bind to (default: 127.0.0.1)
  PRIMES_PORT                  Server port to listen on (default: 8080)
  PRIMES_CORS_ORIGINS          Comma-separated list of allowed CORS origins
  PRIMES_MAX_INTERVAL          Widest interval served over HTTP and MCP, 0 for no limit (default: 1000000)`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, global, search, args)
		},
	}

	cmd.PersistentFlags().StringVar(&global.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR")
	cmd.PersistentFlags().StringVar(&global.logFormat, "log-format", "", "Log format: pretty, json")

	cmd.Flags().IntVarP(&search.workers, "workers", "w", 0, "Number of workers (default: one per CPU)")
	cmd.Flags().BoolVar(&search.noSharedPrimes, "no-shared-primes", false, "Do not share known primes between workers")
	cmd.Flags().DurationVar(&search.timeout, "timeout", 0, "Abort the search after this duration")
	cmd.Flags().StringVarP(&search.output, "output", "o", "", "Output format: text, json, yaml")

	cmd.AddCommand(serveCmd(&global))
	cmd.AddCommand(stdioCmd(&global))
	cmd.AddCommand(versionCmd())

	return cmd
}

func runSearch(cmd *cobra.Command, global globalFlags, search searchFlags, args []string) error {
	start, end, err := parseBounds(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	cfg, err = applySearchOverrides(cmd, cfg, search)
	if err != nil {
		return err
	}

	slogger := configureLogger(cmd, cfg)
	slogger.LogAttrs(commandContext(cmd), slog.LevelDebug, "starting search", cfg.LogAttrs()...)

	client, err := newClient(cfg, slogger)
	if err != nil {
		return fmt.Errorf("create primes client: %w", err)
	}
	defer func() { _ = client.Close() }()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := client.Search.Run(ctx, start, end)
	if err != nil {
		return err
	}
	return renderReport(cmd.OutOrStdout(), report, cfg.Output())
}

// parseBounds reads the optional start and end arguments.
func parseBounds(args []string) (uint64, uint64, error) {
	var start, end uint64
	if len(args) > 0 {
		v, err := parseBound("start", args[0])
		if err != nil {
			return 0, 0, err
		}
		start, end = v, v
	}
	if len(args) > 1 {
		v, err := parseBound("end", args[1])
		if err != nil {
			return 0, 0, err
		}
		end = v
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: %d > %d", primes.ErrInvalidInterval, start, end)
	}
	return start, end, nil
}

func parseBound(name, raw string) (uint64, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("invalid %s %q: out of range", name, raw)
		}
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", name, raw)
	}
	return v, nil
}

// loadConfig loads configuration from .env file and environment variables,
// then applies the global flag overrides.
func loadConfig(global globalFlags) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(global.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	var opts []config.AppConfigOption
	if global.logLevel != "" {
		opts = append(opts, config.WithLogLevel(global.logLevel))
	}
	if global.logFormat != "" {
		opts = append(opts, config.WithLogFormat(config.ParseLogFormat(global.logFormat)))
	}
	return cfg.Apply(opts...), nil
}

// applySearchOverrides applies the flags the user set explicitly.
func applySearchOverrides(cmd *cobra.Command, cfg config.AppConfig, search searchFlags) (config.AppConfig, error) {
	var opts []config.AppConfigOption

	flags := cmd.Flags()
	if flags.Changed("workers") {
		if search.workers < 0 {
			return config.AppConfig{}, fmt.Errorf("%w: %d", primes.ErrInvalidWorkers, search.workers)
		}
		opts = append(opts, config.WithWorkers(search.workers))
	}
	if search.noSharedPrimes {
		opts = append(opts, config.WithSharedPrimes(false))
	}
	if flags.Changed("timeout") {
		opts = append(opts, config.WithTimeout(search.timeout))
	}
	if flags.Changed("output") {
		format, err := config.ParseOutputFormat(search.output)
		if err != nil {
			return config.AppConfig{}, err
		}
		opts = append(opts, config.WithOutput(format))
	}

	return cfg.Apply(opts...), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
