package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	renders     *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	strength    *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder registered with reg.
// A nil reg registers with the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		renders: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findash_renders_total",
				Help: "Total number of dashboard frames rendered, by view state",
			},
			[]string{"state"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		strength: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "findash_asset_strength",
				Help: "Last derived strength score for a symbol",
			},
			[]string{"symbol"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "findash_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRender records a rendered frame.
func (r *Recorder) RecordRender(state string) {
	r.renders.WithLabelValues(state).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordStrength records the last strength score for a symbol.
func (r *Recorder) RecordStrength(symbol string, strength int) {
	r.strength.WithLabelValues(symbol).Set(float64(strength))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordRender(string) {}
func (Noop) RecordError(string) {}
func (Noop) RecordStrength(string, int) {}
func (Noop) RecordLatency(string, float64) {}
