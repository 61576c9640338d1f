package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamTotal   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	mergeDuration   prometheus.Histogram
	mergePoints     prometheus.Histogram
	lastTotal       *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
}

// New creates a Prometheus recorder registered on reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		upstreamTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gearvalue_upstream_requests_total",
				Help: "Requests sent to the prices API",
			},
			[]string{"endpoint", "result"},
		),
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gearvalue_upstream_request_seconds",
				Help:    "Latency of prices API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		mergeDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gearvalue_merge_duration_seconds",
				Help:    "Time spent merging series",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		mergePoints: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gearvalue_merge_points",
				Help:    "Candles in merged series",
				Buckets: prometheus.ExponentialBuckets(16, 2, 10),
			},
		),
		lastTotal: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gearvalue_last_total_gp",
				Help: "Last computed total value of a catalog",
			},
			[]string{"catalog"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gearvalue_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordUpstream records one prices API call.
func (r *Recorder) RecordUpstream(endpoint, result string, seconds float64) {
	r.upstreamTotal.WithLabelValues(endpoint, result).Inc()
	r.upstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordMerge records one merge run.
func (r *Recorder) RecordMerge(points int, seconds float64) {
	r.mergeDuration.Observe(seconds)
	r.mergePoints.Observe(float64(points))
}

// RecordTotal records the last total of a catalog.
func (r *Recorder) RecordTotal(catalog string, total int64) {
	r.lastTotal.WithLabelValues(catalog).Set(float64(total))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordUpstream(string, string, float64) {}
func (Nop) RecordMerge(int, float64)               {}
func (Nop) RecordTotal(string, int64)              {}
func (Nop) RecordError(string)                     {}
