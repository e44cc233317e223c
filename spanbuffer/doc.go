// Package spanbuffer holds finished spans between reports.
//
// The buffer is bounded by MaxSpanRecords. When full it keeps what it has and drops the
// incoming span, counting the loss; the counters travel to the collector with the next
// report so the loss is visible on the backend.
//
//	buf := spanbuffer.New(1000)
//	buf.Append(raw)                     // from Span.Finish, any goroutine
//	spans := buf.DrainAll()             // reporter
//	counters := buf.SnapshotAndResetCounters()
//	if err := send(spans, counters); err != nil {
//	    buf.Restore(spans)
//	    buf.AddCounters(counters)
//	}
package spanbuffer
