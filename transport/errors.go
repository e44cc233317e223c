package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned by New for an unsupported Config.Kind.
	ErrUnknownKind = errors.New("transport: unknown kind")

	// ErrMissingEndpoint is returned when a transport has nowhere to send.
	ErrMissingEndpoint = errors.New("transport: missing endpoint")

	// ErrClosed is returned by SendBatch after Close.
	ErrClosed = errors.New("transport: closed")

	// ErrUnexpectedStatus wraps a non-success collector response.
	ErrUnexpectedStatus = errors.New("transport: unexpected collector status")
)

// Error is the failure of one SendBatch call.
type Error struct {
	// Op names the transport that failed, e.g. "grpc" or "http".
	Op string

	// Retryable reports whether sending the same payload later may succeed.
	Retryable bool

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a retryable *Error.
func IsRetryable(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Retryable
	}
	return false
}

func newError(op string, retryable bool, err error) *Error {
	return &Error{Op: op, Retryable: retryable, Err: err}
}
