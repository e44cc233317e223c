package logger

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// write is the single path from the level methods to zap. Fields are only converted once
// zap has decided the entry is enabled, which keeps suppressed debug logging on the report
// path free of allocations.
func (l *LoggerClient) write(ctx context.Context, level zapcore.Level, msg string, err error, fields []map[string]interface{}) {
	ce := l.Zap.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(append(toZapFields(err, fields...), l.extractTracingFields(ctx)...)...)
}

// extractTracingFields returns trace_id and span_id fields for the span carried by ctx.
// The tracer publishes every span it places in a context as an OpenTelemetry remote span
// context, so this works for spans from this module and for otel-instrumented libraries alike.
func (l *LoggerClient) extractTracingFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}

	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.IsValid() {
		return nil
	}

	return []zap.Field{
		zap.String(FieldTraceID, spanContext.TraceID().String()),
		zap.String(FieldSpanID, spanContext.SpanID().String()),
	}
}

// toZapFields converts err and the field maps into zap fields. Keys are emitted in sorted
// order per map; a key repeated in a later map is written again and wins in most decoders.
func toZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	n := 0
	for _, m := range fields {
		n += len(m)
	}
	if err != nil {
		n++
	}
	if n == 0 {
		return nil
	}

	zapFields := make([]zap.Field, 0, n)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}

	keys := make([]string, 0, n)
	for _, m := range fields {
		keys = keys[:0]
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			zapFields = append(zapFields, zap.Any(k, m[k]))
		}
	}
	return zapFields
}

// Debug logs per-cycle diagnostics such as empty flush cycles.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.DebugLevel, msg, err, fields)
}

// Info logs lifecycle events.
//
// Example:
//
//	log.Info("span reporter started", nil, map[string]interface{}{
//	    "flush_interval": "2.5s",
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.InfoLevel, msg, err, fields)
}

// Warn logs degraded operation, for example a full span buffer.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.WarnLevel, msg, err, fields)
}

// Error logs a failed operation together with err.
//
// Example:
//
//	log.Error("span report failed", err, map[string]interface{}{
//	    "collector": "collector.example.com:443",
//	    "spans":     128,
//	})
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.ErrorLevel, msg, err, fields)
}

// Fatal logs and then calls os.Exit(1).
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.FatalLevel, msg, err, fields)
}

// DebugWithContext is Debug plus the trace fields of ctx.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.DebugLevel, msg, err, fields)
}

// InfoWithContext is Info plus the trace fields of ctx.
//
// Example:
//
//	ctx, span := tracer.StartSpanFromContext(ctx, "charge")
//	defer span.Finish()
//	log.InfoWithContext(ctx, "charging card", nil, map[string]interface{}{"order_id": "o-123"})
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.InfoLevel, msg, err, fields)
}

// WarnWithContext is Warn plus the trace fields of ctx.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.WarnLevel, msg, err, fields)
}

// ErrorWithContext is Error plus the trace fields of ctx.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.ErrorLevel, msg, err, fields)
}

// FatalWithContext is Fatal plus the trace fields of ctx.
func (l *LoggerClient) FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.FatalLevel, msg, err, fields)
}
