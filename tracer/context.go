package tracer

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/aalemi-dev/lstrace/model"
)

type spanKey struct{}

type remoteKey struct{}

// ContextWithSpan returns a copy of ctx carrying span. The span's ids are also published as
// an OpenTelemetry remote span context, which is what the logger reads for trace_id and
// span_id fields.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	if span == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, spanKey{}, span)
	return withOTelIdentity(ctx, span.Context())
}

// SpanFromContext returns the span stored by ContextWithSpan, or nil.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanKey{}).(Span)
	return span
}

func contextWithRemote(ctx context.Context, sc model.SpanContext) context.Context {
	ctx = context.WithValue(ctx, remoteKey{}, sc)
	return withOTelIdentity(ctx, sc)
}

// parentFromContext returns the context of the local span in ctx, falling back to a remote
// context stored by SetCarrierOnContext.
func parentFromContext(ctx context.Context) (model.SpanContext, bool) {
	if ctx == nil {
		return model.SpanContext{}, false
	}
	if span := SpanFromContext(ctx); span != nil {
		if sc := span.Context(); sc.IsValid() {
			return sc, true
		}
	}
	if sc, ok := ctx.Value(remoteKey{}).(model.SpanContext); ok && sc.IsValid() {
		return sc, true
	}
	return model.SpanContext{}, false
}

func withOTelIdentity(ctx context.Context, sc model.SpanContext) context.Context {
	if !sc.IsValid() {
		return ctx
	}
	return trace.ContextWithRemoteSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID(sc.TraceID),
		SpanID:     trace.SpanID(sc.SpanID),
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))
}
