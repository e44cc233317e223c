package propagation

import "fmt"

// Format selects a carrier representation. The set is closed.
type Format int

const (
	// TextMap carries the context as string key/value pairs. Keys use the reserved
	// "ot-tracer-" and "ot-baggage-" prefixes; values are written verbatim.
	TextMap Format = iota + 1

	// HTTPHeaders is TextMap for HTTP header carriers: keys are matched case-insensitively
	// and baggage values are URL-escaped so they survive header transport. Header names are
	// case-insensitive, so baggage names are lower-cased on inject and on extract: "UserID"
	// comes back as "userid".
	HTTPHeaders

	// Binary carries the context as the fixed layout documented in binary.go.
	Binary
)

func (f Format) String() string {
	switch f {
	case TextMap:
		return "text_map"
	case HTTPHeaders:
		return "http_headers"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat maps a format name ("text_map", "http_headers", "binary") to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "text_map", "textmap":
		return TextMap, nil
	case "http_headers", "http":
		return HTTPHeaders, nil
	case "binary":
		return Binary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}
