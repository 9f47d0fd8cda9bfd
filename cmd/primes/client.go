package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/helixml/primes"
	"github.com/helixml/primes/infrastructure/tracking"
	"github.com/helixml/primes/internal/config"
	"github.com/helixml/primes/internal/log"
)

// configureLogger installs the process logger on the command's error stream.
func configureLogger(cmd *cobra.Command, cfg config.AppConfig) *slog.Logger {
	w := cmd.ErrOrStderr()
	if w == io.Writer(os.Stderr) {
		return log.Configure(cfg).Slog()
	}
	l := log.NewLoggerWithWriter(w, cfg.LogFormat(), cfg.LogLevel())
	l.SetDefault()
	return l.Slog()
}

// newClient creates a primes client whose searches are reported to logger.
func newClient(cfg config.AppConfig, logger *slog.Logger) (*primes.Client, error) {
	return primes.New(
		primes.WithAppConfig(cfg),
		primes.WithLogger(logger),
		primes.WithReporter(tracking.NewLoggingReporter(logger)),
	)
}
