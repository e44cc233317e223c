// Package observability defines the hook the tracing pipeline uses to report on itself.
//
// # Overview
//
// A tracing client cannot trace its own reporter without recursion, so the reporter and the
// collector transports describe their work through a single Observer interface instead.
// Applications plug in whatever they like: the metrics package ships an Observer that turns
// operations into prometheus series, and tests use small recording observers.
//
// # Emitting operations
//
//	start := time.Now()
//	err := t.SendBatch(ctx, payload)
//	if observer != nil {
//	    observer.ObserveOperation(observability.OperationContext{
//	        Component: "transport.http",
//	        Operation: "send",
//	        Resource:  endpoint,
//	        Duration:  time.Since(start),
//	        Error:     err,
//	        Size:      int64(len(payload)),
//	    })
//	}
//
// # Consuming operations
//
//	type logObserver struct{ log *zap.Logger }
//
//	func (o *logObserver) ObserveOperation(op observability.OperationContext) {
//	    if op.Error != nil {
//	        o.log.Warn("tracing operation failed",
//	            zap.String("component", op.Component),
//	            zap.String("operation", op.Operation),
//	            zap.Error(op.Error))
//	    }
//	}
//
// Use Multi to attach more than one observer and NewNoOpObserver as an explicit default.
package observability
