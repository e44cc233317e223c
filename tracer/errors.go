package tracer

import "errors"

var (
	// ErrMissingAccessToken is returned by NewTracer, together with a disabled tracer, when
	// Config.AccessToken is empty.
	ErrMissingAccessToken = errors.New("tracer: access token is required")

	// ErrMissingTransport is returned by NewTracer, together with a disabled tracer, when no
	// transport is given.
	ErrMissingTransport = errors.New("tracer: transport is required")

	// ErrDisabled is delivered to flush callbacks of a tracer that never reports.
	ErrDisabled = errors.New("tracer: disabled")
)
