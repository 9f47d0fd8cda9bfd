package tracking

import (
	"context"
	"log/slog"

	"github.com/helixml/primes/domain/task"
)

// LoggingReporter implements Reporter by logging status changes. Start and
// terminal states are logged at INFO (ERROR for failures); intermediate
// progress and the per-sub-range steps of a search are logged at DEBUG.
type LoggingReporter struct {
	logger *slog.Logger
}

// NewLoggingReporter creates a new LoggingReporter.
func NewLoggingReporter(logger *slog.Logger) *LoggingReporter {
	return &LoggingReporter{
		logger: logger,
	}
}

// OnChange logs the status change.
func (r *LoggingReporter) OnChange(ctx context.Context, status task.Status) error {
	attrs := []slog.Attr{
		slog.String("id", status.ID()),
		slog.String("state", string(status.State())),
		slog.Int("current", status.Current()),
		slog.Int("total", status.Total()),
	}
	if status.Message() != "" {
		attrs = append(attrs, slog.String("message", status.Message()))
	}

	level := slog.LevelInfo
	if op := status.Operation(); op != task.OperationSearch && op.IsSearchOperation() {
		level = slog.LevelDebug
	}

	switch status.State() {
	case task.ReportingStateFailed:
		attrs = append(attrs, slog.String("error", status.Error()))
		r.logger.LogAttrs(ctx, slog.LevelError, status.Operation().String(), attrs...)
	case task.ReportingStateCompleted:
		attrs = append(attrs, slog.Duration("elapsed", status.Elapsed()))
		r.logger.LogAttrs(ctx, level, status.Operation().String(), attrs...)
	case task.ReportingStateStarted:
		r.logger.LogAttrs(ctx, level, status.Operation().String(), attrs...)
	default:
		attrs = append(attrs, slog.Float64("completion_percent", status.CompletionPercent()))
		r.logger.LogAttrs(ctx, slog.LevelDebug, status.Operation().String(), attrs...)
	}

	return nil
}
