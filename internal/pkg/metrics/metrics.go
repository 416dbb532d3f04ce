package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh results
const (
	ResultSuccess   = "success"
	ResultFailed    = "failed"
	ResultDiscarded = "discarded"
)

// Recorder exposes the dashboard refresh metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry         *prometheus.Registry
	refreshTotal     *prometheus.CounterVec
	refreshDuration  *prometheus.HistogramVec
	dayFetchFailures *prometheus.CounterVec
	malformedRecords *prometheus.CounterVec
}

// NewRecorder creates a recorder backed by its own registry, with the Go and process
// collectors attached.
func NewRecorder() *Recorder {
	m := &Recorder{
		registry: prometheus.NewRegistry(),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_dashboard_refresh_total",
			Help: "Total dashboard refresh cycles by class and result.",
		}, []string{"class", "result"}),
		refreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attendance_dashboard_refresh_duration_seconds",
			Help:    "Histogram of dashboard refresh cycle durations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"class"}),
		dayFetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_dashboard_day_fetch_failures_total",
			Help: "Total per-day attendance fetches that failed and were treated as empty.",
		}, []string{"class"}),
		malformedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_dashboard_malformed_records_total",
			Help: "Total attendance records whose check-in time could not be parsed.",
		}, []string{"class"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.refreshTotal,
		m.refreshDuration,
		m.dayFetchFailures,
		m.malformedRecords,
	)

	return m
}

// Handler serves the recorder's registry in the Prometheus text format
func (m *Recorder) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, nil for a nil recorder
func (m *Recorder) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Recorder) Refresh(classCode, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(classCode, result).Inc()
	m.refreshDuration.WithLabelValues(classCode).Observe(duration.Seconds())
}

func (m *Recorder) DayFetchFailed(classCode string) {
	if m == nil {
		return
	}
	m.dayFetchFailures.WithLabelValues(classCode).Inc()
}

func (m *Recorder) MalformedRecords(classCode string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.malformedRecords.WithLabelValues(classCode).Add(float64(n))
}

// TrackStreamSubscribers exports the live stream subscriber count reported by count
func (m *Recorder) TrackStreamSubscribers(count func() int) error {
	if m == nil {
		return nil
	}
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "attendance_dashboard_stream_subscribers",
		Help: "Current number of SSE and WebSocket dashboard subscribers.",
	}, func() float64 {
		return float64(count())
	}))
}
