package transport

import (
	"time"

	"github.com/aalemi-dev/lstrace/observability"
)

func observeSend(observer observability.Observer, kind, endpoint string, duration time.Duration, err error, size int) {
	if observer == nil {
		return
	}
	observer.ObserveOperation(observability.OperationContext{
		Component:   "transport",
		Operation:   "send",
		Resource:    kind,
		SubResource: endpoint,
		Duration:    duration,
		Error:       err,
		Size:        int64(size),
	})
}
