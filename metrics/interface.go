package metrics

// MetricsCollector creates metrics registered on the application registry.
//
// It is implemented by *Metrics and exposes no Prometheus types, so components can depend on
// it without importing client_golang.
type MetricsCollector interface {
	// CreateCounter creates and registers a counter.
	//
	// Example:
	//   c := m.CreateCounter("reports_total", "Reports sent", []string{"transport"})
	//   c.WithLabelValues("grpc").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateHistogram creates and registers a histogram with the given buckets.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram

	// CreateGauge creates and registers a gauge.
	CreateGauge(name, help string, labels []string) Gauge
}
