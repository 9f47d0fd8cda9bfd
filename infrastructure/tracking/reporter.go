// Package tracking publishes progress of running searches to reporters.
package tracking

import (
	"context"

	"github.com/helixml/primes/domain/task"
)

// Reporter receives a notification every time a tracked status changes.
type Reporter interface {
	OnChange(ctx context.Context, status task.Status) error
}
