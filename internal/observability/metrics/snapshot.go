package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Summary is the compact JSON view of the widget metrics.
type Summary struct {
	Searches           map[string]int64 `json:"searches"`
	AvailabilityChecks map[string]int64 `json:"availability_checks"`
	Rejections         map[string]int64 `json:"rejections"`
	SessionsCreated    int64            `json:"sessions_created"`
	StreamConnections  int64            `json:"stream_connections"`
	CheckLatency       LatencySummary   `json:"availability_check_latency"`
}

// LatencySummary reports bucket-resolution percentiles.
type LatencySummary struct {
	Count int64   `json:"count"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
}

// Snapshot reads the widget series out of gatherer.
func Snapshot(gatherer prometheus.Gatherer) Summary {
	out := Summary{
		Searches:           map[string]int64{},
		AvailabilityChecks: map[string]int64{},
		Rejections:         map[string]int64{},
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mfs, err := gatherer.Gather()
	if err != nil {
		return out
	}

	for _, mf := range mfs {
		if mf == nil {
			continue
		}
		switch mf.GetName() {
		case namespace + "_searches_total":
			sumByLabel(mf, "outcome", out.Searches)
		case namespace + "_availability_checks_total":
			sumByLabel(mf, "result", out.AvailabilityChecks)
		case namespace + "_rejections_total":
			sumByLabel(mf, "kind", out.Rejections)
		case namespace + "_sessions_created_total":
			out.SessionsCreated = int64(firstValue(mf))
		case namespace + "_event_stream_connections":
			out.StreamConnections = int64(firstValue(mf))
		case namespace + "_availability_check_duration_seconds":
			out.CheckLatency = latency(mf)
		}
	}
	return out
}

func sumByLabel(mf *dto.MetricFamily, label string, into map[string]int64) {
	for _, metric := range mf.Metric {
		if metric == nil || metric.GetCounter() == nil {
			continue
		}
		for _, lp := range metric.Label {
			if lp != nil && lp.GetName() == label {
				into[lp.GetValue()] += int64(metric.GetCounter().GetValue())
			}
		}
	}
}

func firstValue(mf *dto.MetricFamily) float64 {
	for _, metric := range mf.Metric {
		if metric == nil {
			continue
		}
		if c := metric.GetCounter(); c != nil {
			return c.GetValue()
		}
		if g := metric.GetGauge(); g != nil {
			return g.GetValue()
		}
	}
	return 0
}

func latency(mf *dto.MetricFamily) LatencySummary {
	for _, metric := range mf.Metric {
		h := metric.GetHistogram()
		if h == nil || h.GetSampleCount() == 0 {
			continue
		}
		total := h.GetSampleCount()
		return LatencySummary{
			Count: int64(total),
			P50Ms: bucketQuantile(0.50, total, h.Bucket) * 1000,
			P95Ms: bucketQuantile(0.95, total, h.Bucket) * 1000,
		}
	}
	return LatencySummary{}
}

// bucketQuantile returns the upper bound of the first bucket holding the
// q-th sample. Samples beyond the last finite bucket report that bound.
func bucketQuantile(q float64, total uint64, buckets []*dto.Bucket) float64 {
	rank := uint64(math.Ceil(q * float64(total)))
	var lastFinite float64
	for _, b := range buckets {
		if b == nil || math.IsInf(b.GetUpperBound(), 1) {
			continue
		}
		lastFinite = b.GetUpperBound()
		if b.GetCumulativeCount() >= rank {
			return lastFinite
		}
	}
	return lastFinite
}
