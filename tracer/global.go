package tracer

import (
	"context"
	"sync"

	"github.com/aalemi-dev/lstrace/transport"
)

// The process-wide tracer. Library code should take a *Tracer explicitly; the global handle
// exists for code paths where threading one through is impractical.
var global struct {
	mu     sync.RWMutex
	tracer *Tracer
}

var (
	disabledOnce   sync.Once
	disabledTracer *Tracer
)

// InitGlobal builds a tracer, starts it and registers it as the global tracer. On a
// configuration error the disabled tracer is returned and nothing is registered.
func InitGlobal(cfg Config, t transport.Transport, opts ...Option) (*Tracer, error) {
	tr, err := NewTracer(cfg, t, opts...)
	if err != nil {
		return tr, err
	}
	tr.Start()
	SetGlobal(tr)
	return tr, nil
}

// SetGlobal registers t as the global tracer and returns the previous one, or nil. The
// previous tracer is not shut down.
func SetGlobal(t *Tracer) *Tracer {
	global.mu.Lock()
	defer global.mu.Unlock()
	prev := global.tracer
	global.tracer = t
	return prev
}

// Global returns the registered tracer, or a shared disabled tracer when none is registered.
func Global() *Tracer {
	global.mu.RLock()
	t := global.tracer
	global.mu.RUnlock()
	if t != nil {
		return t
	}

	disabledOnce.Do(func() {
		disabledTracer, _ = NewTracer(Config{Disabled: true}, nil)
	})
	return disabledTracer
}

// ShutdownGlobal unregisters the global tracer and shuts it down.
func ShutdownGlobal(ctx context.Context) error {
	t := SetGlobal(nil)
	if t == nil {
		return nil
	}
	return t.Shutdown(ctx)
}

// StartSpanFromContext starts a span on the global tracer as a child of the span in ctx.
func StartSpanFromContext(ctx context.Context, operationName string, opts ...StartSpanOption) (context.Context, Span) {
	return Global().StartSpanFromContext(ctx, operationName, opts...)
}
