/*
Package tracer is the application-facing side of lstrace: it creates spans, propagates their
identity across process boundaries and, through a reporter, ships finished spans to a
collector without blocking the instrumented code.

# Creating a tracer

	tr, err := transport.New(cfg.Transport, transport.Options{AccessToken: cfg.Tracer.AccessToken})
	if err != nil {
	    return err
	}

	t, err := tracer.NewTracer(cfg.Tracer, tr, tracer.WithLogger(log))
	if err != nil {
	    // t is a disabled tracer; spans are inert but safe to use
	    log.Warn("tracing disabled", err, nil)
	}
	t.Start()
	defer t.Shutdown(context.Background())

# Spans

	span := t.StartSpan("checkout")
	defer span.Finish()

	child := t.StartSpan("charge-card", tracer.ChildOf(span.Context()))
	child.SetTag("amount", 42)
	child.LogKV("event", "authorized")
	child.Finish()

A finished span ignores further mutation. Span methods never return errors: when the buffer
is full a finished span is dropped and counted, and the count is sent with the next report.

# Context and propagation

StartSpanFromContext finds the parent in a context.Context. ContextWithSpan also publishes
the span as an OpenTelemetry span context, so the logger's *WithContext methods add trace_id
and span_id:

	ctx, span := t.StartSpanFromContext(ctx, "load-cart")
	defer span.Finish()
	log.InfoWithContext(ctx, "loading cart", nil)

Across process boundaries use GetCarrier and SetCarrierOnContext, or Inject and Extract for
the HTTP header and binary formats:

	for k, v := range t.GetCarrier(ctx) {
	    req.Header.Set(k, v)
	}

	// on the receiving side
	ctx = t.SetCarrierOnContext(r.Context(), headers)
	ctx, span := t.StartSpanFromContext(ctx, "handle")

# Reporting

Finished spans are buffered and reported every Config.Reporter.FlushInterval, or on demand
with Flush and FlushAndWait. Failed reports are retried on later cycles with exponential
backoff. Shutdown makes a final bounded flush and discards what could not be sent.

# Global tracer

InitGlobal, Global, SetGlobal and ShutdownGlobal manage one process-wide tracer. Global
returns a disabled tracer until one is registered.
*/
package tracer
