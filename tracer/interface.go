package tracer

import (
	"context"
	"time"

	"github.com/aalemi-dev/lstrace/model"
)

// Span is one timed unit of work.
//
// A span belongs to the goroutine that started it; concurrent mutation of the same span from
// several goroutines is not supported. Once finished, a span ignores every further mutation
// and a second Finish. Span methods never fail and never block on reporting.
type Span interface {
	// Context returns the span's identity and baggage.
	Context() model.SpanContext

	// SetOperationName replaces the name given at StartSpan.
	SetOperationName(name string) Span

	// SetTag sets a single tag. Values other than strings, numbers and booleans are stored
	// as their fmt.Sprint rendering.
	SetTag(key string, value interface{}) Span

	// SetAttributes sets several tags at once.
	//
	// Example:
	//   span.SetAttributes(map[string]interface{}{
	//     "user.id":      userID,
	//     "request.size": size,
	//   })
	SetAttributes(attrs map[string]interface{})

	// RecordError tags the span with error=true and logs the error message.
	RecordError(err error)

	// LogFields appends a log record stamped with the current time.
	LogFields(fields map[string]interface{})

	// LogKV appends a log record from alternating keys and values. Keys that are not
	// strings are rendered with fmt.Sprint; a trailing key without a value is dropped.
	LogKV(keyValues ...interface{})

	// LogAt appends a log record with an explicit timestamp.
	LogAt(t time.Time, fields map[string]interface{})

	// SetBaggageItem sets a baggage item that propagates to all descendants.
	SetBaggageItem(key, value string) Span

	// BaggageItem returns a baggage value, or "" when absent.
	BaggageItem(key string) string

	// Finish closes the span at the current time and hands it to the span buffer.
	Finish()

	// FinishAt closes the span at t. A t before the start time is clamped to it.
	FinishAt(t time.Time)

	// IsFinished reports whether the span has been closed.
	IsFinished() bool
}

// Logger is the logging contract the tracer uses; it matches logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
