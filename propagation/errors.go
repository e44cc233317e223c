package propagation

import "errors"

var (
	// ErrUnsupportedFormat is returned when the requested format is not TextMap, HTTPHeaders or Binary.
	ErrUnsupportedFormat = errors.New("propagation: unsupported format")

	// ErrInvalidCarrier is returned when the carrier's type does not fit the requested format,
	// e.g. Binary with a map carrier.
	ErrInvalidCarrier = errors.New("propagation: invalid carrier")

	// ErrSpanContextCorrupted is returned by Extract when tracing fields are present but
	// missing, malformed or inconsistent. Details are wrapped around it.
	ErrSpanContextCorrupted = errors.New("propagation: span context corrupted")

	// ErrInvalidSpanContext is returned by Inject for a context without valid ids.
	ErrInvalidSpanContext = errors.New("propagation: invalid span context")
)
