package service

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	computations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// newMetrics registers the service metrics with r.
//
// If the metrics are already registered, the registered collectors are
// reused so that more than one Service can share a registry.
func newMetrics(r prometheus.Registerer) *metrics {
	computations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pftui_engine_computations_total",
			Help: "How many computations ran, partitioned by operation and result.",
		},
		[]string{"operation", "result"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pftui_engine_duration_seconds",
			Help: "The latency of computations in seconds, including data loading.",
		},
		[]string{"operation"},
	)

	return &metrics{
		computations: register(r, computations),
		duration:     register(r, duration),
	}
}

func register[C prometheus.Collector](r prometheus.Registerer, c C) C {
	if r == nil {
		return c
	}

	if err := r.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}

	return c
}

// observe records one computation.
func (m *metrics) observe(operation string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	m.computations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
