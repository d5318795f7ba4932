package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated          uint64
	RejectedMissingFields uint64
	RejectedInvalidName   uint64
	RejectedInvalidEmail  uint64
	RejectedDuplicate     uint64
	CreateDurationCount   uint64
	CreateDurationTotalNs int64
	LookupHits            uint64
	LookupMisses          uint64
}

// InMemoryRecorder keeps counters in process memory.
type InMemoryRecorder struct {
	usersCreated          uint64
	rejectedMissingFields uint64
	rejectedInvalidName   uint64
	rejectedInvalidEmail  uint64
	rejectedDuplicate     uint64
	createDurationCount   uint64
	createDurationTotalNs int64
	lookupHits            uint64
	lookupMisses          uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:          atomic.LoadUint64(&m.usersCreated),
		RejectedMissingFields: atomic.LoadUint64(&m.rejectedMissingFields),
		RejectedInvalidName:   atomic.LoadUint64(&m.rejectedInvalidName),
		RejectedInvalidEmail:  atomic.LoadUint64(&m.rejectedInvalidEmail),
		RejectedDuplicate:     atomic.LoadUint64(&m.rejectedDuplicate),
		CreateDurationCount:   atomic.LoadUint64(&m.createDurationCount),
		CreateDurationTotalNs: atomic.LoadInt64(&m.createDurationTotalNs),
		LookupHits:            atomic.LoadUint64(&m.lookupHits),
		LookupMisses:          atomic.LoadUint64(&m.lookupMisses),
	}
}

// IncUserCreated increments the created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserRejected increments the rejection counter for reason.
// Unknown reasons are ignored.
func (m *InMemoryRecorder) IncUserRejected(reason string) {
	switch reason {
	case RejectMissingFields:
		atomic.AddUint64(&m.rejectedMissingFields, 1)
	case RejectInvalidName:
		atomic.AddUint64(&m.rejectedInvalidName, 1)
	case RejectInvalidEmail:
		atomic.AddUint64(&m.rejectedInvalidEmail, 1)
	case RejectDuplicateEmail:
		atomic.AddUint64(&m.rejectedDuplicate, 1)
	}
}

// ObserveCreateDuration records how long a create took.
func (m *InMemoryRecorder) ObserveCreateDuration(duration time.Duration) {
	atomic.AddUint64(&m.createDurationCount, 1)
	atomic.AddInt64(&m.createDurationTotalNs, duration.Nanoseconds())
}

// IncUserLookup counts a get-by-id as a hit or a miss.
func (m *InMemoryRecorder) IncUserLookup(found bool) {
	if found {
		atomic.AddUint64(&m.lookupHits, 1)
		return
	}
	atomic.AddUint64(&m.lookupMisses, 1)
}
