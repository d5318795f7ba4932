package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncUserRejected is a no-op.
func (n *NoopRecorder) IncUserRejected(reason string) {}

// ObserveCreateDuration is a no-op.
func (n *NoopRecorder) ObserveCreateDuration(duration time.Duration) {}

// IncUserLookup is a no-op.
func (n *NoopRecorder) IncUserLookup(found bool) {}
