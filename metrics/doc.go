/*
Package metrics exposes the tracing pipeline to Prometheus.

NewMetrics sets up two registries, each served by its own HTTP server on /metrics:

  - the system endpoint (default :9090) with Go runtime, process and build info collectors;
  - the application endpoint (default :9091) with metrics created through MetricsCollector.

Every metric carries a constant "service" label taken from Config.ServiceName.

NewObserver plugs the pipeline into the application registry. The returned
*PipelineObserver implements observability.Observer and can be handed to the tracer,
the reporter and any transport:

	m := metrics.NewMetrics(metrics.Config{ServiceName: "checkout"})
	obs := metrics.NewObserver(m)

	t, err := tracer.NewTracer(cfg, tr, tracer.WithObserver(obs))

It records:

	tracing_operations_total{component,operation,status}
	tracing_operation_duration_seconds{component,operation,status}
	tracing_operation_size_bytes{component,operation}
	tracing_spans_dropped_total{component,reason}

Under fx, FXModule provides *Metrics, MetricsCollector and observability.Observer, and
starts and stops both servers with the application.
*/
package metrics
