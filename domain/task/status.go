// Package task models the progress of long-running operations.
package task

import (
	"time"
)

// ReportingState represents the state of task reporting.
type ReportingState string

// ReportingState values.
const (
	ReportingStateStarted    ReportingState = "started"
	ReportingStateInProgress ReportingState = "in_progress"
	ReportingStateCompleted  ReportingState = "completed"
	ReportingStateFailed     ReportingState = "failed"
)

// IsTerminal returns true if the state represents a terminal (final) state.
func (s ReportingState) IsTerminal() bool {
	return s == ReportingStateCompleted || s == ReportingStateFailed
}

// Status is an immutable snapshot of an operation's progress. Every mutator
// returns an updated copy.
type Status struct {
	id           string
	state        ReportingState
	operation    Operation
	message      string
	createdAt    time.Time
	updatedAt    time.Time
	total        int
	current      int
	errorMessage string
}

// NewStatus creates a new Status for the given operation. The runID ties the
// status to one run; an empty runID yields the bare operation name as ID.
func NewStatus(operation Operation, runID string) Status {
	now := time.Now().UTC()
	return Status{
		id:        createStatusID(operation, runID),
		operation: operation,
		state:     ReportingStateStarted,
		createdAt: now,
		updatedAt: now,
	}
}

// ID returns the status ID.
func (s Status) ID() string { return s.id }

// State returns the current state.
func (s Status) State() ReportingState { return s.state }

// Operation returns the tracked operation.
func (s Status) Operation() Operation { return s.operation }

// Message returns the status message.
func (s Status) Message() string { return s.message }

// CreatedAt returns when the status was created.
func (s Status) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns when the status was last updated.
func (s Status) UpdatedAt() time.Time { return s.updatedAt }

// Total returns the number of units of work.
func (s Status) Total() int { return s.total }

// Current returns the number of finished units of work.
func (s Status) Current() int { return s.current }

// Error returns the error message if failed.
func (s Status) Error() string { return s.errorMessage }

// Elapsed returns the time between creation and the last update.
func (s Status) Elapsed() time.Duration { return s.updatedAt.Sub(s.createdAt) }

// CompletionPercent calculates the completion percentage.
func (s Status) CompletionPercent() float64 {
	if s.total == 0 {
		return 0.0
	}
	percent := float64(s.current) / float64(s.total) * 100.0
	if percent < 0 {
		return 0.0
	}
	if percent > 100 {
		return 100.0
	}
	return percent
}

// Fail marks the operation as failed with the given error message.
func (s Status) Fail(errorMsg string) Status {
	s.state = ReportingStateFailed
	s.errorMessage = errorMsg
	s.updatedAt = time.Now().UTC()
	return s
}

// SetTotal sets the number of units of work.
func (s Status) SetTotal(total int) Status {
	s.total = total
	s.updatedAt = time.Now().UTC()
	return s
}

// SetCurrent sets the finished units and optionally updates the message.
// Terminal statuses are left unchanged.
func (s Status) SetCurrent(current int, message string) Status {
	if s.state.IsTerminal() {
		return s
	}
	s.state = ReportingStateInProgress
	s.current = current
	if message != "" {
		s.message = message
	}
	s.updatedAt = time.Now().UTC()
	return s
}

// Complete marks the operation as completed.
// If already in a terminal state, no change is made.
func (s Status) Complete(message string) Status {
	if s.state.IsTerminal() {
		return s
	}
	s.state = ReportingStateCompleted
	s.current = s.total
	if message != "" {
		s.message = message
	}
	s.updatedAt = time.Now().UTC()
	return s
}

// createStatusID joins the operation and run ID: "{operation}:{run_id}".
func createStatusID(operation Operation, runID string) string {
	if runID == "" {
		return string(operation)
	}
	return string(operation) + ":" + runID
}
