package metrics

import (
	"github.com/aalemi-dev/lstrace/observability"
)

// Metric names recorded by PipelineObserver.
const (
	OperationsTotalName   = "tracing_operations_total"
	OperationDurationName = "tracing_operation_duration_seconds"
	OperationSizeName     = "tracing_operation_size_bytes"
	SpansDroppedName      = "tracing_spans_dropped_total"
	BufferedSpansName     = "tracing_buffered_spans"
)

// PipelineObserver turns pipeline operations into Prometheus metrics.
//
// Every operation increments tracing_operations_total{component,operation,status} and records
// its duration. Operations carrying a size record it in tracing_operation_size_bytes, except
// "drop" operations whose size is a span count and goes to tracing_spans_dropped_total.
// A "buffered" span count in the metadata, sent by the reporter after each flush, sets the
// tracing_buffered_spans gauge.
type PipelineObserver struct {
	operations Counter
	duration   Histogram
	size       Histogram
	dropped    Counter
	buffered   Gauge
}

// NewObserver registers the pipeline metrics on collector. Registering twice on the same
// collector panics, so create one observer per collector.
func NewObserver(collector MetricsCollector) *PipelineObserver {
	labels := []string{"component", "operation", "status"}
	return &PipelineObserver{
		operations: collector.CreateCounter(OperationsTotalName,
			"Tracing pipeline operations by component, operation and outcome.", labels),
		duration: collector.CreateHistogram(OperationDurationName,
			"Duration of tracing pipeline operations.", labels, DefaultDurationBuckets),
		size: collector.CreateHistogram(OperationSizeName,
			"Bytes handled by tracing pipeline operations.", []string{"component", "operation"}, DefaultSizeBuckets),
		dropped: collector.CreateCounter(SpansDroppedName,
			"Spans discarded before delivery.", []string{"component", "reason"}),
		buffered: collector.CreateGauge(BufferedSpansName,
			"Spans waiting in the buffer after the last flush.", []string{"component"}),
	}
}

// ObserveOperation implements observability.Observer.
func (o *PipelineObserver) ObserveOperation(op observability.OperationContext) {
	status := "success"
	if op.Error != nil {
		status = "error"
	}

	o.operations.WithLabelValues(op.Component, op.Operation, status).Inc()
	o.duration.WithLabelValues(op.Component, op.Operation, status).Observe(op.Duration.Seconds())

	if n, ok := op.Metadata["buffered"].(int); ok {
		o.buffered.WithLabelValues(op.Component).Set(float64(n))
	}

	if op.Operation == "drop" {
		reason, _ := op.Metadata["reason"].(string)
		if reason == "" {
			reason = "unknown"
		}
		if op.Size > 0 {
			o.dropped.WithLabelValues(op.Component, reason).Add(float64(op.Size))
		}
		return
	}
	if op.Size > 0 {
		o.size.WithLabelValues(op.Component, op.Operation).Observe(float64(op.Size))
	}
}
