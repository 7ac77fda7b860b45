package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "booking_widget"

// WidgetMetrics exposes counters/histograms for widget searches and the
// availability gate.
type WidgetMetrics struct {
	searchesTotal     *prometheus.CounterVec
	checksTotal       *prometheus.CounterVec
	checkLatency      prometheus.Histogram
	rejectionsTotal   *prometheus.CounterVec
	sessionsTotal     prometheus.Counter
	streamConnections prometheus.Gauge
}

func NewWidgetMetrics(reg prometheus.Registerer) *WidgetMetrics {
	m := &WidgetMetrics{
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Search submissions by outcome",
		}, []string{"outcome"}),
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_checks_total",
			Help:      "Availability checks by result",
		}, []string{"result"}),
		checkLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_check_duration_seconds",
			Help:      "Latency of availability checks",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		rejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected widget inputs by kind",
		}, []string{"kind"}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Widget sessions created",
		}),
		streamConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_stream_connections",
			Help:      "Open event stream connections",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.searchesTotal, m.checksTotal, m.checkLatency, m.rejectionsTotal, m.sessionsTotal, m.streamConnections)
	return m
}

func (m *WidgetMetrics) ObserveSearch(outcome string) {
	if m == nil {
		return
	}
	m.searchesTotal.WithLabelValues(outcome).Inc()
}

// ObserveAvailabilityCheck records one gate call. It satisfies
// widget.GateObserver.
func (m *WidgetMetrics) ObserveAvailabilityCheck(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(result).Inc()
	m.checkLatency.Observe(d.Seconds())
}

func (m *WidgetMetrics) ObserveRejection(kind string) {
	if m == nil {
		return
	}
	m.rejectionsTotal.WithLabelValues(kind).Inc()
}

func (m *WidgetMetrics) ObserveSessionCreated() {
	if m == nil {
		return
	}
	m.sessionsTotal.Inc()
}

// StreamOpened tracks an event stream connection; call the returned func
// when it closes.
func (m *WidgetMetrics) StreamOpened() func() {
	if m == nil {
		return func() {}
	}
	m.streamConnections.Inc()
	return m.streamConnections.Dec
}
