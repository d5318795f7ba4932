// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Reasons a create request can be rejected.
const (
	RejectMissingFields  = "missing_fields"
	RejectInvalidName    = "invalid_name"
	RejectInvalidEmail   = "invalid_email"
	RejectDuplicateEmail = "duplicate_email"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// User creation metrics
	IncUserCreated()
	IncUserRejected(reason string)
	ObserveCreateDuration(duration time.Duration)

	// Lookup metrics
	IncUserLookup(found bool)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
