package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/muzammilspiralsols/widget-booking/internal/observability/metrics"
)

// Stats serves a JSON digest of the widget metrics at GET /widget/stats.
func Stats(gatherer prometheus.Gatherer) http.HandlerFunc {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.Snapshot(gatherer))
	}
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
