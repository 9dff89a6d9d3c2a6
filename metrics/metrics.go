package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the filesystem operation collectors. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	Connections       prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileman_fs_operations_total",
				Help: "Total number of filesystem operations",
			},
			[]string{"backend", "action", "result"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fileman_fs_operation_duration_seconds",
				Help:    "Filesystem operation duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"backend", "action"},
		),
		Connections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fileman_bridge_connections",
				Help: "Number of open bridge connections",
			},
		),
	}
}

// Observe records one finished operation.
func (m *Metrics) Observe(backend, action string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.Operations.WithLabelValues(backend, action, result).Inc()
	m.OperationDuration.WithLabelValues(backend, action).Observe(time.Since(start).Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
