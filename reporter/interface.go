package reporter

import (
	"context"
	"time"
)

// Logger is the logging contract the reporter uses; it matches logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Stats is a snapshot of the reporter's delivery history.
type Stats struct {
	// Cycles counts completed report cycles, including empty ones.
	Cycles uint64

	// Failures counts cycles that ended with an error.
	Failures uint64

	// ConsecutiveFailures counts failed cycles since the last success.
	ConsecutiveFailures uint64

	// SpansSent counts spans in reports the transport accepted.
	SpansSent uint64

	// SpansDropped counts spans the reporter itself discarded: restore overflow,
	// unencodable batches and spans still buffered at stop.
	SpansDropped uint64

	// LastError is the error of the most recent failed cycle.
	LastError error

	// LastSuccess is when a report was last accepted.
	LastSuccess time.Time

	// NextDelay is the wait before the next automatic cycle.
	NextDelay time.Duration
}
