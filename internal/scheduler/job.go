package scheduler

import "context"

// Job is a unit of background work executed by the worker pool: occurrence
// materialization, reminders, budget alerts.
type Job interface {
	// Execute runs the job with the given context.
	// Context should be respected for cancellation and timeouts.
	Execute(ctx context.Context) error

	// Description returns a human-readable description of the job.
	// Used for logging purposes.
	Description() string
}
