package payload

import (
	"time"

	"github.com/aalemi-dev/lstrace/model"
)

// Encoder serializes reports for a transport.
type Encoder interface {
	// Encode renders a report into its wire form.
	Encode(report *Report) ([]byte, error)

	// EstimateSize returns the approximate encoded size, in bytes, of the spans before
	// compression. It must not underestimate by much: the reporter relies on it to keep
	// payloads under the configured maximum.
	EstimateSize(spans []*model.RawSpan) int

	// ContentType is the media type of encoded payloads.
	ContentType() string

	// ContentEncoding names the compression applied to payloads, empty for none.
	ContentEncoding() string
}

// Report is one batch handed to a transport.
type Report struct {
	ReporterGUID string
	Component    string
	Tags         map[string]interface{}

	DroppedSpans int64
	DroppedLogs  int64

	Timestamp time.Time
	Spans     []*model.RawSpan
}
