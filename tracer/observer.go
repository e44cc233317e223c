package tracer

import (
	"github.com/aalemi-dev/lstrace/observability"
)

// observeDrop reports a finished span the buffer refused.
func (t *Tracer) observeDrop(reason string) {
	if t.observer == nil {
		return
	}
	t.observer.ObserveOperation(observability.OperationContext{
		Component: "tracer",
		Operation: "drop",
		Resource:  t.cfg.ComponentName,
		Size:      1,
		Metadata:  map[string]interface{}{"reason": reason},
	})
}
