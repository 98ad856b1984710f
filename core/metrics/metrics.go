package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Storage groups the collectors for storage driver operations.
type Storage struct {
	Operations *prometheus.CounterVec
	Errors     *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewStorage creates and registers the storage collectors on reg.
func NewStorage(reg prometheus.Registerer) *Storage {
	factory := promauto.With(reg)
	return &Storage{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storage_operations_total",
			Help: "The total number of storage operations by driver and operation",
		}, []string{"driver", "op"}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storage_operation_errors_total",
			Help: "The total number of failed storage operations by error kind",
		}, []string{"driver", "op", "kind"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storage_operation_duration_seconds",
			Help:    "Time taken by storage driver operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"driver", "op"}),
	}
}

// Handler serves the metrics gathered by reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
