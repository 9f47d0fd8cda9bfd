package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/primes/internal/mcp"
)

func stdioCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

The server exposes the largest_prime, is_prime and get_version tools.
Logs are written to stderr so stdout carries only protocol messages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStdio(cmd, *global)
		},
	}
}

func runStdio(cmd *cobra.Command, global globalFlags) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	slogger := configureLogger(cmd, cfg)
	slogger.Info("starting MCP server", slog.String("version", version))

	client, err := newClient(cfg, slogger)
	if err != nil {
		return fmt.Errorf("create primes client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slogger.Error("failed to close primes client", slog.Any("error", err))
		}
	}()

	return mcp.NewServer(client.Search.WithMaxInterval(cfg.MaxInterval()), version, slogger).ServeStdio()
}
