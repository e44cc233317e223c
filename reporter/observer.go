package reporter

import (
	"time"

	"github.com/aalemi-dev/lstrace/observability"
)

// observeOperation safely calls the observer if it's not nil.
func (r *Reporter) observeOperation(operation string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveOperation(observability.OperationContext{
		Component: "reporter",
		Operation: operation,
		Resource:  r.meta.component,
		Duration:  duration,
		Error:     err,
		Size:      size,
		Metadata:  metadata,
	})
}
