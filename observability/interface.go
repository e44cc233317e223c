package observability

import "time"

// Observer is the hook through which the tracing pipeline reports its own activity.
// The reporter and every collector transport call it once per completed operation, so an
// application can turn pipeline health (flushes, sends, drops) into metrics or logs without
// the pipeline depending on any particular backend.
//
// This interface is optional - the pipeline works without an observer.
type Observer interface {
	// ObserveOperation is called when a pipeline operation completes.
	// Implementations must be safe for concurrent use and must not block.
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed pipeline operation.
type OperationContext struct {
	// Component identifies which package performed the operation.
	// Examples: "reporter", "transport.grpc", "transport.http", "kafka", "minio"
	Component string

	// Operation describes what was performed.
	// Examples:
	//   Reporter:  "flush", "send", "drop"
	//   Transport: "send"
	Operation string

	// Resource identifies the target of the operation.
	// Examples: collector endpoint ("collector.example.com:443"), kafka topic, bucket name
	Resource string

	// SubResource provides additional resource context (optional).
	// Examples: object key within a bucket, batch index within a flush ("2")
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the error returned by the operation, if any.
	Error error

	// Size is the magnitude of the operation: number of spans for reporter operations,
	// payload bytes for transport sends, number of spans lost for "drop".
	Size int64

	// Metadata carries operation-specific extras (optional).
	// Examples: {"batches": 3}, {"content_encoding": "gzip"}
	Metadata map[string]interface{}
}
