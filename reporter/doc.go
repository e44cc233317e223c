/*
Package reporter ships finished spans from a spanbuffer.Buffer to a transport.

A Reporter runs report cycles: it drains the buffer, splits the spans into reports that
stay under a size limit, encodes each with a payload.Encoder and hands it to a
transport.Transport. Spans from reports that failed go back to the front of the buffer for
the next cycle, and the drop counters go back with them.

Cycles run on a timer started by Start, or on request through Flush. Only one cycle runs at
a time; requests made while one is running are coalesced into a single follow-up cycle.

	r := reporter.New(buf, t, enc, reporter.Config{FlushInterval: 2 * time.Second},
		reporter.WithLogger(log),
		reporter.WithReportMeta(guid, "checkout", nil),
	)
	r.Start()
	defer r.Stop(context.Background())

	r.Flush(func(err error) {
		if err != nil {
			log.WarnWithContext(ctx, "flush failed", err)
		}
	})

After a failed cycle the timer waits longer before the next one, growing exponentially up
to Config.MaxBackoff; a successful cycle restores the normal interval. Stop makes one final
bounded attempt, then discards anything still buffered.
*/
package reporter
