package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the system and application registries and the HTTP servers exposing them.
// A server and its registry are nil when the corresponding address is disabled.
type Metrics struct {
	// SystemServer serves Go runtime, process and build info metrics on /metrics.
	SystemServer *http.Server

	// ApplicationServer serves the tracing pipeline metrics on /metrics.
	ApplicationServer *http.Server

	SystemRegistry      *prometheus.Registry
	ApplicationRegistry *prometheus.Registry

	// registerer adds the service label to everything registered on ApplicationRegistry.
	registerer prometheus.Registerer
}

// NewMetrics builds the registries and servers described by cfg. Servers are not started;
// RegisterMetricsLifecycle does that under fx.
//
// When the application endpoint is disabled the application metrics are still collected
// into an unexposed registry, so collectors and observers keep working.
func NewMetrics(cfg Config) *Metrics {
	m := &Metrics{}
	labels := prometheus.Labels{"service": cfg.ServiceName}

	if addr := addressOrDefault(cfg.SystemMetricsAddress, DefaultSystemMetricsAddress); addr != "" {
		registry := prometheus.NewRegistry()
		prometheus.WrapRegistererWith(labels, registry).MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)

		m.SystemRegistry = registry
		m.SystemServer = &http.Server{
			Addr:    addr,
			Handler: handlerFor(registry),
		}
	}

	m.ApplicationRegistry = prometheus.NewRegistry()
	m.registerer = prometheus.WrapRegistererWith(labels, m.ApplicationRegistry)
	if addr := addressOrDefault(cfg.ApplicationMetricsAddress, DefaultApplicationMetricsAddress); addr != "" {
		m.ApplicationServer = &http.Server{
			Addr:    addr,
			Handler: handlerFor(m.ApplicationRegistry),
		}
	}

	return m
}

func handlerFor(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}
