package payload

import "errors"

var (
	// ErrUnknownCompression is returned for a Config.Compression value the encoder does not know.
	ErrUnknownCompression = errors.New("payload: unknown compression")

	// ErrNilReport is returned when Encode is called without a report.
	ErrNilReport = errors.New("payload: nil report")

	// ErrDecode wraps failures to decompress or parse a payload.
	ErrDecode = errors.New("payload: decode failed")
)
