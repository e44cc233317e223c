package spanbuffer

// DefaultMaxSpanRecords is the capacity used when none is configured.
const DefaultMaxSpanRecords = 1000

// Counters is the drop telemetry accumulated between reports.
type Counters struct {
	// DroppedSpans counts spans rejected because the buffer was full.
	DroppedSpans int64

	// DroppedLogs counts log records discarded by spans that hit their per-span log limit.
	DroppedLogs int64
}

// IsZero reports whether nothing was dropped.
func (c Counters) IsZero() bool {
	return c.DroppedSpans == 0 && c.DroppedLogs == 0
}

// Add returns the sum of two counter sets.
func (c Counters) Add(o Counters) Counters {
	return Counters{
		DroppedSpans: c.DroppedSpans + o.DroppedSpans,
		DroppedLogs:  c.DroppedLogs + o.DroppedLogs,
	}
}
