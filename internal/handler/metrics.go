package handler

import (
	"fmt"
	"net/http"

	"github.com/udukunda1/usersvc/internal/metrics"
)

// StoreCounter reports how many records are stored.
type StoreCounter interface {
	Count() int
}

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
	store       StoreCounter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter, store StoreCounter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter, store: store}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "usersvc_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "usersvc_users_rejected_total{reason=\"%s\"} %d\n", metrics.RejectMissingFields, snap.RejectedMissingFields)
	writeMetric(w, "usersvc_users_rejected_total{reason=\"%s\"} %d\n", metrics.RejectInvalidName, snap.RejectedInvalidName)
	writeMetric(w, "usersvc_users_rejected_total{reason=\"%s\"} %d\n", metrics.RejectInvalidEmail, snap.RejectedInvalidEmail)
	writeMetric(w, "usersvc_users_rejected_total{reason=\"%s\"} %d\n", metrics.RejectDuplicateEmail, snap.RejectedDuplicate)

	writeMetric(w, "usersvc_create_duration_seconds_count %d\n", snap.CreateDurationCount)
	writeMetric(w, "usersvc_create_duration_seconds_sum %.6f\n", float64(snap.CreateDurationTotalNs)/1e9)

	writeMetric(w, "usersvc_user_lookups_total{result=\"hit\"} %d\n", snap.LookupHits)
	writeMetric(w, "usersvc_user_lookups_total{result=\"miss\"} %d\n", snap.LookupMisses)

	if h.store != nil {
		writeMetric(w, "usersvc_users_stored %d\n", h.store.Count())
	}
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
