package propagation

import (
	"fmt"

	"github.com/aalemi-dev/lstrace/model"
)

// Inject writes sc into carrier using format.
//
// TextMap and HTTPHeaders accept map[string]string, http.Header or any TextMapWriter.
// Binary accepts *[]byte (replaced with the encoding) or io.Writer.
func Inject(sc model.SpanContext, format Format, carrier interface{}) error {
	if !sc.IsValid() {
		return ErrInvalidSpanContext
	}

	switch format {
	case TextMap, HTTPHeaders:
		w, ok := textMapWriter(carrier)
		if !ok {
			return fmt.Errorf("%w: %s format needs a text map writer, got %T", ErrInvalidCarrier, format, carrier)
		}
		injectTextMap(sc, w, format == HTTPHeaders)
		return nil
	case Binary:
		return injectBinary(sc, carrier)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Extract reads a span context from carrier using format.
//
// found is false with a nil error when the carrier holds no tracing fields at all, which is
// the normal case for an untraced inbound request. A carrier whose tracing fields are
// incomplete or malformed yields an error wrapping ErrSpanContextCorrupted.
func Extract(format Format, carrier interface{}) (sc model.SpanContext, found bool, err error) {
	switch format {
	case TextMap, HTTPHeaders:
		r, ok := textMapReader(carrier)
		if !ok {
			return model.SpanContext{}, false, fmt.Errorf("%w: %s format needs a text map reader, got %T", ErrInvalidCarrier, format, carrier)
		}
		return extractTextMap(r, format == HTTPHeaders)
	case Binary:
		return extractBinary(carrier)
	default:
		return model.SpanContext{}, false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
