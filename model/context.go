package model

// SpanContext is the propagated identity of a span: its trace id, span id and baggage.
//
// SpanContext is a value type. The ids never change after construction and the baggage map
// is never mutated in place; WithBaggageItem returns a new context with a new map, so a
// context handed to another span or another goroutine cannot be changed underneath it.
type SpanContext struct {
	TraceID TraceID
	SpanID  SpanID

	// Baggage is read-only once the context is shared. Use WithBaggageItem to derive a copy.
	Baggage map[string]string
}

// NewSpanContext builds a context, copying the baggage map.
func NewSpanContext(traceID TraceID, spanID SpanID, baggage map[string]string) SpanContext {
	return SpanContext{TraceID: traceID, SpanID: spanID, Baggage: copyBaggage(baggage, 0)}
}

// IsValid reports whether both ids are set.
func (c SpanContext) IsValid() bool {
	return c.TraceID.IsValid() && c.SpanID.IsValid()
}

// BaggageItem returns the baggage value for key, or "" when absent.
func (c SpanContext) BaggageItem(key string) string {
	return c.Baggage[key]
}

// ForeachBaggageItem calls handler for each baggage item until it returns false.
func (c SpanContext) ForeachBaggageItem(handler func(k, v string) bool) {
	for k, v := range c.Baggage {
		if !handler(k, v) {
			return
		}
	}
}

// WithBaggageItem returns a copy of the context with key set to val.
func (c SpanContext) WithBaggageItem(key, val string) SpanContext {
	baggage := copyBaggage(c.Baggage, 1)
	if baggage == nil {
		baggage = make(map[string]string, 1)
	}
	baggage[key] = val
	return SpanContext{TraceID: c.TraceID, SpanID: c.SpanID, Baggage: baggage}
}

// ChildContext returns a context in the same trace with a new span id and a private copy of
// the baggage.
func (c SpanContext) ChildContext(spanID SpanID) SpanContext {
	return SpanContext{TraceID: c.TraceID, SpanID: spanID, Baggage: copyBaggage(c.Baggage, 0)}
}

func copyBaggage(src map[string]string, extra int) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src)+extra)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
