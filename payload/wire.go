package payload

import (
	"sort"
	"time"

	"github.com/aalemi-dev/lstrace/model"
)

// Envelope is the JSON document produced by JSONEncoder.
type Envelope struct {
	Reporter        ReporterRecord `json:"reporter"`
	Spans           []SpanRecord   `json:"spans"`
	TimestampMicros int64          `json:"timestamp_micros"`
	InternalMetrics []Metric       `json:"internal_metrics,omitempty"`
}

// ReporterRecord identifies the tracer that sent the report.
type ReporterRecord struct {
	ReporterID string     `json:"reporter_id"`
	Tags       []KeyValue `json:"tags,omitempty"`
}

// SpanRecord is the wire form of a finished span.
type SpanRecord struct {
	TraceID        string            `json:"trace_id"`
	SpanID         string            `json:"span_id"`
	ParentSpanID   string            `json:"parent_span_id,omitempty"`
	Operation      string            `json:"operation_name"`
	References     []ReferenceRecord `json:"references,omitempty"`
	StartMicros    int64             `json:"start_timestamp_micros"`
	DurationMicros int64             `json:"duration_micros"`
	Tags           []KeyValue        `json:"tags,omitempty"`
	Logs           []LogEntry        `json:"logs,omitempty"`
	Baggage        map[string]string `json:"baggage,omitempty"`
	DroppedLogs    int               `json:"dropped_logs,omitempty"`
}

// ReferenceRecord is the wire form of a span reference.
type ReferenceRecord struct {
	Relationship string `json:"relationship"`
	TraceID      string `json:"trace_id"`
	SpanID       string `json:"span_id"`
}

// LogEntry is the wire form of a span log record.
type LogEntry struct {
	TimestampMicros int64      `json:"timestamp_micros"`
	Fields          []KeyValue `json:"fields"`
}

// KeyValue is a tag or log field. Value holds a string, bool, number.
type KeyValue struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Metric is a named counter reported alongside the spans.
type Metric struct {
	Name     string `json:"name"`
	IntValue int64  `json:"int_value"`
}

func newEnvelope(r *Report) Envelope {
	tags := make(map[string]interface{}, len(r.Tags)+2)
	for k, v := range r.Tags {
		tags[k] = v
	}
	if r.Component != "" {
		tags[TagComponentName] = r.Component
	}
	if r.ReporterGUID != "" {
		tags[TagGUID] = r.ReporterGUID
	}

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	env := Envelope{
		Reporter: ReporterRecord{
			ReporterID: r.ReporterGUID,
			Tags:       keyValues(tags),
		},
		Spans:           make([]SpanRecord, 0, len(r.Spans)),
		TimestampMicros: ts.UnixMicro(),
	}
	for _, s := range r.Spans {
		if s == nil {
			continue
		}
		env.Spans = append(env.Spans, newSpanRecord(s))
	}
	if r.DroppedSpans != 0 {
		env.InternalMetrics = append(env.InternalMetrics, Metric{Name: MetricSpansDropped, IntValue: r.DroppedSpans})
	}
	if r.DroppedLogs != 0 {
		env.InternalMetrics = append(env.InternalMetrics, Metric{Name: MetricLogsDropped, IntValue: r.DroppedLogs})
	}
	return env
}

func newSpanRecord(s *model.RawSpan) SpanRecord {
	rec := SpanRecord{
		TraceID:        s.Context.TraceID.String(),
		SpanID:         s.Context.SpanID.String(),
		Operation:      s.Operation,
		StartMicros:    s.Start.UnixMicro(),
		DurationMicros: s.Duration().Microseconds(),
		Tags:           keyValues(s.Tags),
		DroppedLogs:    s.DroppedLogs,
	}
	if s.ParentSpanID.IsValid() {
		rec.ParentSpanID = s.ParentSpanID.String()
	}
	if len(s.Context.Baggage) > 0 {
		rec.Baggage = make(map[string]string, len(s.Context.Baggage))
		s.Context.ForeachBaggageItem(func(k, v string) bool {
			rec.Baggage[k] = v
			return true
		})
	}
	for _, ref := range s.References {
		rec.References = append(rec.References, ReferenceRecord{
			Relationship: ref.Type.String(),
			TraceID:      ref.Context.TraceID.String(),
			SpanID:       ref.Context.SpanID.String(),
		})
	}
	for _, l := range s.Logs {
		rec.Logs = append(rec.Logs, LogEntry{
			TimestampMicros: l.Timestamp.UnixMicro(),
			Fields:          keyValues(l.Fields),
		})
	}
	return rec
}

// keyValues flattens a map into key-sorted pairs so equal inputs encode identically.
func keyValues(m map[string]interface{}) []KeyValue {
	if len(m) == 0 {
		return nil
	}
	out := make([]KeyValue, 0, len(m))
	for k, v := range m {
		out = append(out, KeyValue{Key: k, Value: model.NormalizeTagValue(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
