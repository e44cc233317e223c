package propagation

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalemi-dev/lstrace/model"
)

// Text map wire contract, version 1. These keys are shared with other OpenTracing
// implementations and must not change.
const (
	FieldTraceID  = "ot-tracer-traceid"
	FieldSpanID   = "ot-tracer-spanid"
	FieldSampled  = "ot-tracer-sampled"
	BaggagePrefix = "ot-baggage-"
)

// TextMapWriter is a carrier that accepts key/value pairs.
type TextMapWriter interface {
	Set(key, val string)
}

// TextMapReader is a carrier that can enumerate its key/value pairs.
// Returning an error from the handler aborts the iteration and is returned as-is.
type TextMapReader interface {
	ForeachKey(handler func(key, val string) error) error
}

// TextMapCarrier adapts a map to TextMapWriter and TextMapReader.
type TextMapCarrier map[string]string

// Set implements TextMapWriter.
func (c TextMapCarrier) Set(key, val string) {
	c[key] = val
}

// ForeachKey implements TextMapReader.
func (c TextMapCarrier) ForeachKey(handler func(key, val string) error) error {
	for k, v := range c {
		if err := handler(k, v); err != nil {
			return err
		}
	}
	return nil
}

// HTTPHeadersCarrier adapts http.Header to TextMapWriter and TextMapReader.
type HTTPHeadersCarrier http.Header

// Set implements TextMapWriter. The key is stored as given, replacing any canonical form of
// it, so baggage names survive a round trip through the same header map.
func (c HTTPHeadersCarrier) Set(key, val string) {
	http.Header(c).Del(key)
	c[key] = []string{val}
}

// ForeachKey implements TextMapReader. Only the first value of each header is used.
func (c HTTPHeadersCarrier) ForeachKey(handler func(key, val string) error) error {
	for k, vals := range c {
		if len(vals) == 0 {
			continue
		}
		if err := handler(k, vals[0]); err != nil {
			return err
		}
	}
	return nil
}

func textMapWriter(carrier interface{}) (TextMapWriter, bool) {
	switch c := carrier.(type) {
	case map[string]string:
		if c == nil {
			return nil, false
		}
		return TextMapCarrier(c), true
	case http.Header:
		if c == nil {
			return nil, false
		}
		return HTTPHeadersCarrier(c), true
	case TextMapWriter:
		return c, true
	default:
		return nil, false
	}
}

func textMapReader(carrier interface{}) (TextMapReader, bool) {
	switch c := carrier.(type) {
	case map[string]string:
		return TextMapCarrier(c), true
	case http.Header:
		return HTTPHeadersCarrier(c), true
	case TextMapReader:
		return c, true
	default:
		return nil, false
	}
}

func injectTextMap(sc model.SpanContext, w TextMapWriter, escape bool) {
	w.Set(FieldTraceID, formatTraceID(sc.TraceID))
	w.Set(FieldSpanID, sc.SpanID.String())
	w.Set(FieldSampled, "true")
	for k, v := range sc.Baggage {
		if escape {
			k = strings.ToLower(k)
			v = url.QueryEscape(v)
		}
		w.Set(BaggagePrefix+k, v)
	}
}

func extractTextMap(r TextMapReader, unescape bool) (model.SpanContext, bool, error) {
	var (
		traceID, spanID     string
		haveTrace, haveSpan bool
		baggage             map[string]string
	)

	err := r.ForeachKey(func(key, val string) error {
		lower := strings.ToLower(key)
		switch {
		case lower == FieldTraceID:
			traceID, haveTrace = val, true
		case lower == FieldSpanID:
			spanID, haveSpan = val, true
		case lower == FieldSampled:
			// Sampling is decided elsewhere; accept and ignore.
		case strings.HasPrefix(lower, BaggagePrefix):
			name := key[len(BaggagePrefix):]
			if unescape {
				name = lower[len(BaggagePrefix):]
				unescaped, err := url.QueryUnescape(val)
				if err != nil {
					return fmt.Errorf("%w: baggage %q: %v", ErrSpanContextCorrupted, name, err)
				}
				val = unescaped
			}
			if baggage == nil {
				baggage = make(map[string]string)
			}
			baggage[name] = val
		}
		return nil
	})
	if err != nil {
		return model.SpanContext{}, false, err
	}

	if !haveTrace && !haveSpan && baggage == nil {
		return model.SpanContext{}, false, nil
	}
	if !haveTrace || !haveSpan {
		return model.SpanContext{}, false, fmt.Errorf("%w: both %s and %s are required", ErrSpanContextCorrupted, FieldTraceID, FieldSpanID)
	}

	tid, err := parseTraceID(traceID)
	if err != nil {
		return model.SpanContext{}, false, err
	}
	sid, err := parseSpanID(spanID)
	if err != nil {
		return model.SpanContext{}, false, err
	}

	return model.SpanContext{TraceID: tid, SpanID: sid, Baggage: baggage}, true, nil
}

// formatTraceID writes 16 digits when the high half is zero so that peers limited to
// 64-bit trace ids can read it, 32 digits otherwise.
func formatTraceID(id model.TraceID) string {
	if id.High() == 0 {
		return fmt.Sprintf("%016x", id.Low())
	}
	return id.String()
}

func parseTraceID(s string) (model.TraceID, error) {
	var id model.TraceID
	if err := decodePaddedHex(s, id[:]); err != nil {
		return id, fmt.Errorf("%w: trace id %q: %v", ErrSpanContextCorrupted, s, err)
	}
	if !id.IsValid() {
		return id, fmt.Errorf("%w: trace id is zero", ErrSpanContextCorrupted)
	}
	return id, nil
}

func parseSpanID(s string) (model.SpanID, error) {
	var id model.SpanID
	if err := decodePaddedHex(s, id[:]); err != nil {
		return id, fmt.Errorf("%w: span id %q: %v", ErrSpanContextCorrupted, s, err)
	}
	if !id.IsValid() {
		return id, fmt.Errorf("%w: span id is zero", ErrSpanContextCorrupted)
	}
	return id, nil
}

// decodePaddedHex decodes up to 2*len(dst) hex digits into dst, right-aligned.
func decodePaddedHex(s string, dst []byte) error {
	if s == "" {
		return fmt.Errorf("empty")
	}
	if len(s) > 2*len(dst) {
		return fmt.Errorf("longer than %d hex digits", 2*len(dst))
	}
	padded := strings.Repeat("0", 2*len(dst)-len(s)) + s
	if _, err := hex.Decode(dst, []byte(padded)); err != nil {
		return err
	}
	return nil
}
