package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ReferenceType is the causal relationship between a span and a referenced context.
type ReferenceType int

const (
	// ChildOf means the referenced span depends on the result of the new span.
	ChildOf ReferenceType = iota

	// FollowsFrom means the referenced span does not wait for the new span.
	FollowsFrom
)

func (r ReferenceType) String() string {
	switch r {
	case ChildOf:
		return "child_of"
	case FollowsFrom:
		return "follows_from"
	default:
		return fmt.Sprintf("reference(%d)", int(r))
	}
}

// Reference links a span to another span's context.
type Reference struct {
	Type    ReferenceType
	Context SpanContext
}

// LogRecord is one timestamped entry in a span's log.
type LogRecord struct {
	Timestamp time.Time
	Fields    map[string]interface{}
}

// RawSpan is the closed record of a finished span. Once handed to the span buffer it is
// never modified again.
type RawSpan struct {
	Context SpanContext

	// ParentSpanID is the span id of the first child-of reference (or the first reference of
	// any kind when there is no child-of), zero for a root span.
	ParentSpanID SpanID

	References []Reference
	Operation  string
	Start      time.Time
	Finish     time.Time
	Tags       map[string]interface{}
	Logs       []LogRecord

	// DroppedLogs counts log records discarded because the span exceeded its log limit.
	DroppedLogs int
}

// Duration returns Finish - Start.
func (s *RawSpan) Duration() time.Duration {
	return s.Finish.Sub(s.Start)
}

// NormalizeTagValue maps a tag value onto the small set of types reports carry:
// string, bool, int64, uint64 and finite float64. Anything else is rendered as a string.
func NormalizeTagValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string, bool, int64, uint64:
		return val
	case float64:
		return finiteOrString(val)
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return uint64(val)
	case uint8:
		return uint64(val)
	case uint16:
		return uint64(val)
	case uint32:
		return uint64(val)
	case float32:
		return finiteOrString(float64(val))
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// finiteOrString keeps finite floats as numbers. NaN and the infinities have no JSON number
// form, so they are carried as "NaN", "+Inf" and "-Inf".
func finiteOrString(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}
