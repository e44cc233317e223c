package tracer

import (
	"context"
	"time"

	"github.com/aalemi-dev/lstrace/model"
	"github.com/aalemi-dev/lstrace/propagation"
	"github.com/aalemi-dev/lstrace/reporter"
)

// StartSpan starts a span named operationName.
//
// With a child-of or follows-from reference the span joins the referenced trace and copies
// its baggage; without one it starts a new trace. The span id is always new. A disabled
// tracer returns an inert span.
//
// Example:
//
//	span := t.StartSpan("charge-card", tracer.ChildOf(parent.Context()), tracer.WithTag("amount", 42))
//	defer span.Finish()
func (t *Tracer) StartSpan(operationName string, opts ...StartSpanOption) Span {
	if !t.enabled.Load() {
		return noopSpan{}
	}

	var o StartSpanOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.StartTime.IsZero() {
		o.StartTime = time.Now()
	}

	raw := model.RawSpan{
		Operation:  operationName,
		References: o.References,
		Start:      o.StartTime,
	}
	if parent, ok := o.parent(); ok {
		raw.Context = parent.ChildContext(t.ids.NewSpanID())
		raw.ParentSpanID = parent.SpanID
	} else {
		raw.Context = model.NewSpanContext(t.ids.NewTraceID(), t.ids.NewSpanID(), nil)
	}
	if len(o.Tags) > 0 {
		raw.Tags = make(map[string]interface{}, len(o.Tags))
		for k, v := range o.Tags {
			raw.Tags[k] = model.NormalizeTagValue(v)
		}
	}

	s := &spanImpl{tracer: t, maxLogs: t.cfg.MaxLogsPerSpan, raw: raw}
	if o.AutoFinish > 0 {
		s.mu.Lock()
		s.autoFinish = time.AfterFunc(o.AutoFinish, func() {
			s.finish(time.Now(), true)
		})
		s.mu.Unlock()
	}
	return s
}

// record hands a finished span to the buffer.
func (t *Tracer) record(raw *model.RawSpan) {
	if !t.enabled.Load() {
		return
	}
	if !t.buf.Append(raw) && !t.buf.Closed() {
		t.observeDrop("buffer_full")
	}
}

// Inject writes sc into carrier. A disabled tracer writes nothing and returns nil.
func (t *Tracer) Inject(sc model.SpanContext, format propagation.Format, carrier interface{}) error {
	if !t.enabled.Load() {
		return nil
	}
	return propagation.Inject(sc, format, carrier)
}

// Extract reads a span context from carrier. found is false, with a nil error, when the
// carrier holds no tracing data. Extraction works on disabled tracers too.
func (t *Tracer) Extract(format propagation.Format, carrier interface{}) (model.SpanContext, bool, error) {
	return propagation.Extract(format, carrier)
}

// GetCarrier returns the text-map headers for the span, or extracted remote context, carried
// by ctx. Add them to outbound requests or messages to continue the trace downstream. The map
// is empty when ctx carries nothing or the tracer is disabled.
//
// Example:
//
//	for k, v := range t.GetCarrier(ctx) {
//	    req.Header.Set(k, v)
//	}
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	carrier := map[string]string{}
	sc, ok := parentFromContext(ctx)
	if !ok {
		return carrier
	}
	if err := t.Inject(sc, propagation.TextMap, carrier); err != nil && t.logger != nil {
		t.logger.WarnWithContext(ctx, "failed to inject span context", err)
	}
	return carrier
}

// SetCarrierOnContext extracts a span context from inbound headers and stores it in ctx, so
// StartSpanFromContext continues the remote trace. ctx is returned unchanged when the
// carrier holds no tracing data or holds corrupted data.
//
// Example:
//
//	headers := map[string]string{}
//	for k := range r.Header {
//	    headers[k] = r.Header.Get(k)
//	}
//	ctx := t.SetCarrierOnContext(r.Context(), headers)
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	sc, found, err := propagation.Extract(propagation.TextMap, carrier)
	if err != nil {
		if t.logger != nil {
			t.logger.WarnWithContext(ctx, "ignoring corrupted trace headers", err)
		}
		return ctx
	}
	if !found {
		return ctx
	}
	return contextWithRemote(ctx, sc)
}

// StartSpanFromContext starts a span that is a child of the span, or remote context, in ctx
// and returns a context carrying the new span.
func (t *Tracer) StartSpanFromContext(ctx context.Context, operationName string, opts ...StartSpanOption) (context.Context, Span) {
	if parent, ok := parentFromContext(ctx); ok {
		opts = append([]StartSpanOption{ChildOf(parent)}, opts...)
	}
	span := t.StartSpan(operationName, opts...)
	return ContextWithSpan(ctx, span), span
}

// Start launches periodic reporting when Config.Reporter.FlushInterval is positive.
func (t *Tracer) Start() {
	if t.enabled.Load() {
		t.reporter.Start()
	}
}

// Flush requests an immediate report and returns without waiting. cb, when not nil, is
// called exactly once with the outcome: nil, the first transport error, reporter.ErrStopped
// after Shutdown, or ErrDisabled for a tracer that never reports.
func (t *Tracer) Flush(cb func(error)) {
	if t.reporter == nil {
		if cb != nil {
			go cb(ErrDisabled)
		}
		return
	}
	t.reporter.Flush(cb)
}

// FlushAndWait reports everything buffered and waits for the outcome or for ctx to end.
func (t *Tracer) FlushAndWait(ctx context.Context) error {
	if t.reporter == nil {
		return ErrDisabled
	}
	return t.reporter.FlushAndWait(ctx)
}

// Shutdown disables the tracer and stops its reporter after one last bounded flush.
// Spans finished afterwards are discarded. The transport is not closed; it belongs to the
// caller. Shutdown is idempotent and returns the first call's result.
func (t *Tracer) Shutdown(ctx context.Context) error {
	t.shutdownOnce.Do(func() {
		t.enabled.Store(false)
		if t.reporter == nil {
			return
		}
		t.shutdownErr = t.reporter.Stop(ctx)
		if t.logger != nil {
			stats := t.reporter.Stats()
			t.logger.InfoWithContext(ctx, "tracer stopped", t.shutdownErr, map[string]interface{}{
				"component":     t.cfg.ComponentName,
				"spans_sent":    stats.SpansSent,
				"spans_dropped": stats.SpansDropped,
			})
		}
	})
	return t.shutdownErr
}

// Enabled reports whether new spans are recorded.
func (t *Tracer) Enabled() bool {
	return t.enabled.Load()
}

// RuntimeGUID identifies this tracer instance in reports.
func (t *Tracer) RuntimeGUID() string {
	return t.guid
}

// ComponentName returns the effective component name.
func (t *Tracer) ComponentName() string {
	return t.cfg.ComponentName
}

// Stats returns the reporter's delivery history; zero for a tracer that never reports.
func (t *Tracer) Stats() reporter.Stats {
	if t.reporter == nil {
		return reporter.Stats{}
	}
	return t.reporter.Stats()
}
