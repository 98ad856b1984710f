// Package metrics owns the Prometheus registry of the service and the
// collectors recorded around storage operations.
//
// Collectors live on a dedicated registry, not the global default.
//
// # Usage
//
//	reg := metrics.NewRegistry()
//	collectors := metrics.NewStorage(reg)
//	app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(metrics.Handler(reg)))
package metrics
