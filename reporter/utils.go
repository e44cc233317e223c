package reporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aalemi-dev/lstrace/model"
	"github.com/aalemi-dev/lstrace/payload"
	"github.com/aalemi-dev/lstrace/spanbuffer"
	"github.com/cenkalti/backoff/v5"
)

// Start launches the periodic report loop. It is a no-op when FlushInterval is zero, when
// the loop already runs, or after Stop.
func (r *Reporter) Start() {
	if r.cfg.FlushInterval <= 0 || r.state.Load() == stateStopped {
		return
	}
	r.startOnce.Do(func() {
		r.started.Store(true)
		go r.loop()
	})
}

// Flush requests a report cycle and returns immediately. cb, when not nil, is called exactly
// once with the outcome, from a reporter goroutine; it must not block for long.
func (r *Reporter) Flush(cb func(error)) {
	r.mu.Lock()
	if r.state.Load() == stateStopped {
		r.mu.Unlock()
		if cb != nil {
			go cb(ErrStopped)
		}
		return
	}

	if cb != nil {
		r.pending = append(r.pending, cb)
	}
	r.requested = true

	if !r.state.CompareAndSwap(stateIdle, stateFlushing) {
		// the running cycle picks this request up when it finishes
		r.mu.Unlock()
		return
	}
	r.running.Add(1)
	r.mu.Unlock()

	go r.run()
}

// FlushAndWait runs a report cycle and waits for its outcome or for ctx to end.
func (r *Reporter) FlushAndWait(ctx context.Context) error {
	done := make(chan error, 1)
	r.Flush(func(err error) {
		done <- err
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the periodic loop, makes one last attempt to send what is buffered, and then
// discards whatever is left. The final attempt is bounded by StopTimeout and by ctx; when
// the bound elapses the in-flight send is cancelled. Stop is idempotent; later calls
// return nil.
func (r *Reporter) Stop(ctx context.Context) error {
	var err error
	r.stopOnce.Do(func() {
		err = r.stop(ctx)
	})
	return err
}

func (r *Reporter) stop(ctx context.Context) error {
	close(r.stopCh)
	if r.started.Load() {
		<-r.loopDone
	}

	stopCtx, cancel := context.WithTimeout(ctx, r.cfg.StopTimeout)
	defer cancel()

	flushErr := r.FlushAndWait(stopCtx)
	if flushErr != nil && stopCtx.Err() != nil {
		r.logf(ctx, "final flush did not finish before the stop deadline", flushErr)
	}

	r.mu.Lock()
	r.state.Store(stateStopped)
	queued := r.pending
	r.pending = nil
	r.requested = false
	r.mu.Unlock()

	r.cancelBase()
	for _, cb := range queued {
		cb(ErrStopped)
	}

	if discarded := r.buf.Close(); discarded > 0 {
		r.recordDropped(discarded)
		r.observeOperation("drop", 0, nil, int64(discarded), map[string]interface{}{"reason": "shutdown"})
		if r.logger != nil {
			r.logger.WarnWithContext(ctx, "discarded buffered spans at shutdown", nil, map[string]interface{}{
				"spans": discarded,
			})
		}
	}

	// give a cancelled send a chance to return, within the same bound
	cycleDone := make(chan struct{})
	go func() {
		r.running.Wait()
		close(cycleDone)
	}()
	select {
	case <-cycleDone:
	case <-stopCtx.Done():
	}

	return flushErr
}

// Stats returns a snapshot of the delivery history.
func (r *Reporter) Stats() Stats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

// Stopped reports whether Stop has completed its state change.
func (r *Reporter) Stopped() bool {
	return r.state.Load() == stateStopped
}

func (r *Reporter) loop() {
	defer close(r.loopDone)

	timer := time.NewTimer(r.cfg.FlushInterval)
	defer timer.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-timer.C:
		}

		done := make(chan struct{})
		r.Flush(func(error) { close(done) })
		select {
		case <-done:
		case <-r.stopCh:
			return
		}

		timer.Reset(r.Stats().NextDelay)
	}
}

// run owns the Flushing state. It keeps cycling while requests arrive and hands the state
// back to Idle once no request is outstanding.
func (r *Reporter) run() {
	defer r.running.Done()

	for {
		r.mu.Lock()
		if r.state.Load() == stateStopped {
			r.mu.Unlock()
			return
		}
		if !r.requested {
			r.state.CompareAndSwap(stateFlushing, stateIdle)
			r.mu.Unlock()
			return
		}
		callbacks := r.pending
		r.pending = nil
		r.requested = false
		r.mu.Unlock()

		err := r.cycle(r.baseCtx)
		for _, cb := range callbacks {
			cb(err)
		}
	}
}

// cycle performs one drain-encode-send pass.
func (r *Reporter) cycle(ctx context.Context) error {
	start := time.Now()

	spans := r.buf.DrainAll()
	counters := r.buf.SnapshotAndResetCounters()
	if len(spans) == 0 && counters.IsZero() {
		r.recordEmptyCycle()
		return nil
	}

	batches := r.split(spans)
	if len(batches) == 0 {
		// counters alone still get reported
		batches = [][]*model.RawSpan{nil}
	}

	var (
		firstErr     error
		sendErr      error
		encodeErr    error
		lateDrops    int64
		sent         int
		bytes        int64
		countersSent bool
	)
	for i, batch := range batches {
		report := &payload.Report{
			ReporterGUID: r.meta.guid,
			Component:    r.meta.component,
			Tags:         r.meta.tags,
			Timestamp:    time.Now(),
			Spans:        batch,
		}
		carriesCounters := !countersSent
		if carriesCounters {
			report.DroppedSpans = counters.DroppedSpans
			report.DroppedLogs = counters.DroppedLogs
		}

		data, err := r.encoder.Encode(report)
		if err != nil {
			// an unencodable batch would fail the same way on every retry, so its spans are
			// dropped and counted like any other loss
			err = fmt.Errorf("encode report: %w", err)
			r.recordDropped(len(batch))
			r.observeOperation("drop", 0, err, int64(len(batch)), map[string]interface{}{"reason": "encode"})
			if countersSent {
				lateDrops += int64(len(batch))
			} else {
				counters.DroppedSpans += int64(len(batch))
			}
			if encodeErr == nil {
				encodeErr = err
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, r.cfg.SendTimeout)
		err = r.transport.SendBatch(sendCtx, data)
		cancel()
		if err != nil {
			sendErr = err
			if firstErr == nil {
				firstErr = err
			}
			r.restore(ctx, batches[i:])
			break
		}

		if carriesCounters {
			countersSent = true
		}
		sent += len(batch)
		bytes += int64(len(data))
	}

	if !countersSent {
		r.buf.AddCounters(counters)
	}
	if lateDrops > 0 {
		// found after the counters went out; they travel with the next report
		r.buf.AddCounters(spanbuffer.Counters{DroppedSpans: lateDrops})
	}

	duration := time.Since(start)
	r.observeOperation("flush", duration, sendErr, bytes, map[string]interface{}{
		"spans":    sent,
		"batches":  len(batches),
		"buffered": r.buf.Len(),
	})

	// only transport failures feed the backoff; an encode failure says nothing about the collector
	if sendErr != nil {
		r.recordFailure(ctx, sendErr, sent)
		return firstErr
	}
	r.recordSuccess(sent)
	if encodeErr != nil {
		r.recordEncodeError(ctx, encodeErr)
	}
	return firstErr
}

// split groups spans into batches whose estimated encoded size stays under MaxPayloadSize.
// A span too large on its own is sent alone.
func (r *Reporter) split(spans []*model.RawSpan) [][]*model.RawSpan {
	if len(spans) == 0 {
		return nil
	}

	overhead := r.encoder.EstimateSize(nil)
	var (
		batches [][]*model.RawSpan
		current []*model.RawSpan
		size    = overhead
	)
	for _, s := range spans {
		spanSize := r.encoder.EstimateSize([]*model.RawSpan{s}) - overhead
		if len(current) > 0 && size+spanSize > r.cfg.MaxPayloadSize {
			batches = append(batches, current)
			current = nil
			size = overhead
		}
		current = append(current, s)
		size += spanSize
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

func (r *Reporter) restore(ctx context.Context, batches [][]*model.RawSpan) {
	var failed []*model.RawSpan
	for _, b := range batches {
		failed = append(failed, b...)
	}
	if len(failed) == 0 {
		return
	}

	if dropped := r.buf.Restore(failed); dropped > 0 {
		r.recordDropped(dropped)
		r.observeOperation("drop", 0, nil, int64(dropped), map[string]interface{}{"reason": "restore_overflow"})
		r.logf(ctx, "buffer full while restoring unsent spans", fmt.Errorf("%d spans dropped", dropped))
	}
}

func (r *Reporter) recordEmptyCycle() {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	r.stats.Cycles++
}

func (r *Reporter) recordSuccess(sent int) {
	r.backoff.Reset()

	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	r.stats.Cycles++
	r.stats.ConsecutiveFailures = 0
	r.stats.SpansSent += uint64(sent)
	r.stats.LastSuccess = time.Now()
	r.stats.NextDelay = r.cfg.FlushInterval
}

func (r *Reporter) recordFailure(ctx context.Context, err error, sent int) {
	delay := r.backoff.NextBackOff()
	if delay == backoff.Stop || delay > r.cfg.MaxBackoff {
		delay = r.cfg.MaxBackoff
	}
	if delay < r.cfg.FlushInterval {
		delay = r.cfg.FlushInterval
	}

	r.statsMu.Lock()
	r.stats.Cycles++
	r.stats.Failures++
	r.stats.ConsecutiveFailures++
	r.stats.SpansSent += uint64(sent)
	r.stats.LastError = err
	r.stats.NextDelay = delay
	consecutive := r.stats.ConsecutiveFailures
	r.statsMu.Unlock()

	if errors.Is(err, context.Canceled) && r.baseCtx.Err() != nil {
		// stopping; Stop reports this itself
		return
	}
	r.failureLog.Do(func() {
		if r.logger == nil {
			return
		}
		r.logger.WarnWithContext(ctx, "failed to send span report", err, map[string]interface{}{
			"consecutive_failures": consecutive,
			"next_attempt_in":      delay.String(),
		})
	})
}

func (r *Reporter) recordEncodeError(ctx context.Context, err error) {
	r.statsMu.Lock()
	r.stats.LastError = err
	r.statsMu.Unlock()

	r.logf(ctx, "dropped spans that could not be encoded", err)
}

func (r *Reporter) recordDropped(n int) {
	if n <= 0 {
		return
	}
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	r.stats.SpansDropped += uint64(n)
}

func (r *Reporter) logf(ctx context.Context, msg string, err error) {
	if r.logger == nil {
		return
	}
	r.logger.ErrorWithContext(ctx, msg, err, map[string]interface{}{
		"component": r.meta.component,
	})
}

// Counters exposes the drop counters not yet reported.
func (r *Reporter) Counters() spanbuffer.Counters {
	return r.buf.Counters()
}
