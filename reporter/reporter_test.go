package reporter_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aalemi-dev/lstrace/model"
	"github.com/aalemi-dev/lstrace/observability"
	"github.com/aalemi-dev/lstrace/payload"
	"github.com/aalemi-dev/lstrace/reporter"
	"github.com/aalemi-dev/lstrace/spanbuffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCollectorDown = errors.New("collector down")

// stubTransport records payloads and tracks how many sends overlap.
type stubTransport struct {
	mu       sync.Mutex
	payloads [][]byte
	send     func(ctx context.Context, call int) error

	calls       atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (s *stubTransport) SendBatch(ctx context.Context, data []byte) error {
	call := int(s.calls.Add(1))
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	if s.send != nil {
		if err := s.send(ctx, call); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, append([]byte(nil), data...))
	return nil
}

func (s *stubTransport) Close() error { return nil }

func (s *stubTransport) sent() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.payloads...)
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (o *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, ctx)
}

func (o *recordingObserver) find(operation string) []observability.OperationContext {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []observability.OperationContext
	for _, op := range o.ops {
		if op.Operation == operation {
			out = append(out, op)
		}
	}
	return out
}

var spanSeq atomic.Uint64

func newSpan(op string) *model.RawSpan {
	id := spanSeq.Add(1)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &model.RawSpan{
		Context:   model.NewSpanContext(model.TraceIDFromUint64s(0, id), model.SpanIDFromUint64(id), nil),
		Operation: op,
		Start:     start,
		Finish:    start.Add(time.Millisecond),
	}
}

func newEncoder(t *testing.T) *payload.JSONEncoder {
	t.Helper()
	enc, err := payload.NewJSONEncoder(payload.Config{})
	require.NoError(t, err)
	return enc
}

func decode(t *testing.T, enc *payload.JSONEncoder, data []byte) *payload.Envelope {
	t.Helper()
	env, err := enc.Decode(data)
	require.NoError(t, err)
	return env
}

func operations(env *payload.Envelope) []string {
	out := make([]string, 0, len(env.Spans))
	for _, s := range env.Spans {
		out = append(out, s.Operation)
	}
	return out
}

func bufferedOps(buf *spanbuffer.Buffer) []string {
	var out []string
	for _, s := range buf.DrainAll() {
		out = append(out, s.Operation)
	}
	return out
}

func TestFlushAndWait_SendsBufferedSpans(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	enc := newEncoder(t)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, enc, reporter.Config{}, reporter.WithReportMeta("guid-1", "checkout", map[string]interface{}{"env": "test"}))

	buf.Append(newSpan("a"))
	buf.Append(newSpan("b"))
	buf.Append(newSpan("c"))

	require.NoError(t, r.FlushAndWait(context.Background()))

	sent := tr.sent()
	require.Len(t, sent, 1)
	env := decode(t, enc, sent[0])
	assert.Equal(t, []string{"a", "b", "c"}, operations(env))
	assert.Equal(t, "guid-1", env.Reporter.ReporterID)
	assert.Equal(t, 0, buf.Len())

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.Cycles)
	assert.Equal(t, uint64(3), stats.SpansSent)
	assert.Zero(t, stats.Failures)
	assert.False(t, stats.LastSuccess.IsZero())
}

func TestFlushAndWait_EmptyBufferSkipsNetwork(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{}
	r := reporter.New(spanbuffer.New(10), tr, newEncoder(t), reporter.Config{})

	require.NoError(t, r.FlushAndWait(context.Background()))
	assert.Zero(t, tr.calls.Load())
	assert.Equal(t, uint64(1), r.Stats().Cycles)
}

func TestFlushAndWait_ReportsCountersWithoutSpans(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	enc := newEncoder(t)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, enc, reporter.Config{})

	buf.AddCounters(spanbuffer.Counters{DroppedSpans: 4, DroppedLogs: 2})
	require.NoError(t, r.FlushAndWait(context.Background()))

	sent := tr.sent()
	require.Len(t, sent, 1)
	env := decode(t, enc, sent[0])
	assert.Empty(t, env.Spans)
	assert.Contains(t, env.InternalMetrics, payload.Metric{Name: payload.MetricSpansDropped, IntValue: 4})
	assert.Contains(t, env.InternalMetrics, payload.Metric{Name: payload.MetricLogsDropped, IntValue: 2})
	assert.True(t, buf.Counters().IsZero())
}

func TestFlush_CoalescesRequestsDuringCycle(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	buf := spanbuffer.New(10)
	tr := &stubTransport{
		send: func(ctx context.Context, call int) error {
			if call == 1 {
				<-release
			}
			return nil
		},
	}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{})

	var first, second, third atomic.Int32
	done := make(chan struct{}, 3)

	buf.Append(newSpan("a"))
	r.Flush(func(err error) {
		assert.NoError(t, err)
		first.Add(1)
		done <- struct{}{}
	})
	require.Eventually(t, func() bool { return tr.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	buf.Append(newSpan("b"))
	r.Flush(func(err error) {
		assert.NoError(t, err)
		second.Add(1)
		done <- struct{}{}
	})
	r.Flush(func(err error) {
		assert.NoError(t, err)
		third.Add(1)
		done <- struct{}{}
	})
	close(release)

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("callback not called")
		}
	}

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
	assert.Equal(t, int32(1), third.Load())
	assert.Equal(t, int32(2), tr.calls.Load())
	assert.Equal(t, int32(1), tr.maxInFlight.Load())
}

func TestFlush_NilCallbackStillFlushes(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{})

	buf.Append(newSpan("a"))
	r.Flush(nil)

	require.Eventually(t, func() bool { return len(tr.sent()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestFlushAndWait_RestoresSpansOnFailure(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	tr := &stubTransport{send: func(context.Context, int) error { return errCollectorDown }}
	obs := &recordingObserver{}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{}, reporter.WithObserver(obs))

	buf.Append(newSpan("a"))
	buf.Append(newSpan("b"))
	buf.AddCounters(spanbuffer.Counters{DroppedSpans: 1})

	err := r.FlushAndWait(context.Background())
	require.ErrorIs(t, err, errCollectorDown)

	assert.Equal(t, spanbuffer.Counters{DroppedSpans: 1}, buf.Counters())
	assert.Equal(t, []string{"a", "b"}, bufferedOps(buf))

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.Failures)
	assert.Equal(t, uint64(1), stats.ConsecutiveFailures)
	assert.ErrorIs(t, stats.LastError, errCollectorDown)

	flushes := obs.find("flush")
	require.Len(t, flushes, 1)
	assert.Equal(t, "reporter", flushes[0].Component)
	assert.ErrorIs(t, flushes[0].Error, errCollectorDown)
	assert.Equal(t, 2, flushes[0].Metadata["buffered"], "restored spans are still buffered")
}

func TestFlushAndWait_RestoredSpansGoFirst(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	enc := newEncoder(t)
	tr := &stubTransport{send: func(_ context.Context, call int) error {
		if call == 1 {
			return errCollectorDown
		}
		return nil
	}}
	r := reporter.New(buf, tr, enc, reporter.Config{})

	buf.Append(newSpan("a"))
	require.Error(t, r.FlushAndWait(context.Background()))

	buf.Append(newSpan("b"))
	require.NoError(t, r.FlushAndWait(context.Background()))

	sent := tr.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"a", "b"}, operations(decode(t, enc, sent[0])))

	stats := r.Stats()
	assert.Equal(t, uint64(2), stats.Cycles)
	assert.Equal(t, uint64(1), stats.Failures)
	assert.Zero(t, stats.ConsecutiveFailures)
	assert.Equal(t, uint64(2), stats.SpansSent)
}

func TestFlushAndWait_RestoreRespectsCapacity(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	buf := spanbuffer.New(2)
	tr := &stubTransport{send: func(context.Context, int) error {
		<-release
		return errCollectorDown
	}}
	obs := &recordingObserver{}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{}, reporter.WithObserver(obs))

	buf.Append(newSpan("a"))
	buf.Append(newSpan("b"))

	done := make(chan error, 1)
	r.Flush(func(err error) { done <- err })
	require.Eventually(t, func() bool { return tr.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// new spans arrive while the failing send is in flight
	buf.Append(newSpan("c"))
	close(release)
	require.ErrorIs(t, <-done, errCollectorDown)

	assert.Equal(t, spanbuffer.Counters{DroppedSpans: 1}, buf.Counters())
	assert.Equal(t, []string{"a", "b"}, bufferedOps(buf))
	assert.Equal(t, uint64(1), r.Stats().SpansDropped)
	require.Len(t, obs.find("drop"), 1)
	assert.Equal(t, "restore_overflow", obs.find("drop")[0].Metadata["reason"])
}

func spanSize(enc *payload.JSONEncoder, s *model.RawSpan) int {
	return enc.EstimateSize([]*model.RawSpan{s}) - enc.EstimateSize(nil)
}

func TestFlushAndWait_SplitsLargeDrains(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	enc := newEncoder(t)
	tr := &stubTransport{}

	spans := []*model.RawSpan{newSpan("a"), newSpan("b"), newSpan("c"), newSpan("d"), newSpan("e")}
	largest := 0
	for _, s := range spans {
		if n := spanSize(enc, s); n > largest {
			largest = n
		}
		buf.Append(s)
	}
	buf.AddCounters(spanbuffer.Counters{DroppedSpans: 3})

	cfg := reporter.Config{MaxPayloadSize: enc.EstimateSize(nil) + 2*largest}
	r := reporter.New(buf, tr, enc, cfg)

	require.NoError(t, r.FlushAndWait(context.Background()))

	sent := tr.sent()
	require.Len(t, sent, 3)
	var got []string
	for i, data := range sent {
		env := decode(t, enc, data)
		assert.LessOrEqual(t, len(env.Spans), 2)
		got = append(got, operations(env)...)
		if i == 0 {
			assert.Contains(t, env.InternalMetrics, payload.Metric{Name: payload.MetricSpansDropped, IntValue: 3})
		} else {
			assert.Empty(t, env.InternalMetrics)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
	assert.Equal(t, uint64(5), r.Stats().SpansSent)
}

func TestFlushAndWait_OversizeSpanTravelsAlone(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	enc := newEncoder(t)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, enc, reporter.Config{MaxPayloadSize: 1})

	buf.Append(newSpan("a"))
	buf.Append(newSpan("b"))
	buf.Append(newSpan("c"))

	require.NoError(t, r.FlushAndWait(context.Background()))

	sent := tr.sent()
	require.Len(t, sent, 3)
	for i, op := range []string{"a", "b", "c"} {
		assert.Equal(t, []string{op}, operations(decode(t, enc, sent[i])))
	}
}

func TestFlushAndWait_PartialFailureRestoresRemainder(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	enc := newEncoder(t)
	tr := &stubTransport{send: func(_ context.Context, call int) error {
		if call == 2 {
			return errCollectorDown
		}
		return nil
	}}
	r := reporter.New(buf, tr, enc, reporter.Config{MaxPayloadSize: 1})

	buf.Append(newSpan("a"))
	buf.Append(newSpan("b"))
	buf.Append(newSpan("c"))
	buf.AddCounters(spanbuffer.Counters{DroppedLogs: 7})

	require.ErrorIs(t, r.FlushAndWait(context.Background()), errCollectorDown)

	// the counters rode on the first report, which succeeded
	assert.True(t, buf.Counters().IsZero())
	assert.Equal(t, []string{"b", "c"}, bufferedOps(buf))
	assert.Equal(t, int32(2), tr.calls.Load())
	assert.Equal(t, uint64(1), r.Stats().SpansSent)
}

type failingEncoder struct {
	*payload.JSONEncoder
}

func (failingEncoder) Encode(*payload.Report) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestFlushAndWait_DropsUnencodableBatch(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, failingEncoder{newEncoder(t)}, reporter.Config{})

	buf.Append(newSpan("a"))
	err := r.FlushAndWait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode report")

	assert.Zero(t, tr.calls.Load())
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, uint64(1), r.Stats().SpansDropped)
	assert.Equal(t, int64(1), buf.Counters().DroppedSpans, "the loss is kept for the collector")
	assert.Zero(t, r.Stats().ConsecutiveFailures)
}

// selectiveEncoder fails any report holding a span named "unencodable".
type selectiveEncoder struct {
	*payload.JSONEncoder
}

func (e selectiveEncoder) Encode(report *payload.Report) ([]byte, error) {
	for _, s := range report.Spans {
		if s.Operation == "unencodable" {
			return nil, errors.New("unsupported value")
		}
	}
	return e.JSONEncoder.Encode(report)
}

func TestFlushAndWait_EncodeFailureCountedAndKeepsBackoff(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t)
	buf := spanbuffer.New(10)
	tr := &stubTransport{}
	cfg := reporter.Config{FlushInterval: 100 * time.Millisecond, MaxPayloadSize: 1}
	r := reporter.New(buf, tr, selectiveEncoder{enc}, cfg)

	buf.Append(newSpan("good-1"))
	buf.Append(newSpan("unencodable"))
	buf.Append(newSpan("good-2"))

	err := r.FlushAndWait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode report")

	sent := tr.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{"good-1"}, operations(decode(t, enc, sent[0])))
	assert.Equal(t, []string{"good-2"}, operations(decode(t, enc, sent[1])))

	stats := r.Stats()
	assert.Equal(t, uint64(2), stats.SpansSent)
	assert.Equal(t, uint64(1), stats.SpansDropped)
	assert.Zero(t, stats.ConsecutiveFailures)
	assert.Zero(t, stats.Failures)
	assert.Equal(t, cfg.FlushInterval, stats.NextDelay)
	require.Error(t, stats.LastError)

	// the drop reaches the collector with the next report
	require.NoError(t, r.FlushAndWait(context.Background()))
	sent = tr.sent()
	require.Len(t, sent, 3)
	env := decode(t, enc, sent[2])
	assert.Empty(t, env.Spans)
	assert.Contains(t, env.InternalMetrics, payload.Metric{Name: payload.MetricSpansDropped, IntValue: 1})
	assert.True(t, buf.Counters().IsZero())
}

func TestFlushAndWait_EncodeFailureBeforeCountersRidesOnNextBatch(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t)
	buf := spanbuffer.New(10)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, selectiveEncoder{enc}, reporter.Config{MaxPayloadSize: 1})

	buf.Append(newSpan("unencodable"))
	buf.Append(newSpan("good"))
	buf.AddCounters(spanbuffer.Counters{DroppedSpans: 2})

	require.Error(t, r.FlushAndWait(context.Background()))

	sent := tr.sent()
	require.Len(t, sent, 1)
	env := decode(t, enc, sent[0])
	assert.Equal(t, []string{"good"}, operations(env))
	assert.Contains(t, env.InternalMetrics, payload.Metric{Name: payload.MetricSpansDropped, IntValue: 3})
	assert.True(t, buf.Counters().IsZero())
}

func TestFlushAndWait_NonFiniteTagDoesNotLoseBatch(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t)
	buf := spanbuffer.New(10)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, enc, reporter.Config{})

	bad := newSpan("ratio")
	bad.Tags = map[string]interface{}{"ratio": math.NaN(), "limit": math.Inf(1)}
	bad.Logs = []model.LogRecord{{Timestamp: bad.Start, Fields: map[string]interface{}{"score": math.Inf(-1)}}}
	buf.Append(newSpan("good-1"))
	buf.Append(bad)
	buf.Append(newSpan("good-2"))

	require.NoError(t, r.FlushAndWait(context.Background()))

	sent := tr.sent()
	require.Len(t, sent, 1)
	env := decode(t, enc, sent[0])
	assert.Equal(t, []string{"good-1", "ratio", "good-2"}, operations(env))
	assert.Contains(t, env.Spans[1].Tags, payload.KeyValue{Key: "ratio", Value: "NaN"})
	assert.Contains(t, env.Spans[1].Tags, payload.KeyValue{Key: "limit", Value: "+Inf"})
	assert.Equal(t, "-Inf", env.Spans[1].Logs[0].Fields[0].Value)
	assert.Zero(t, r.Stats().SpansDropped)
}

func TestBackoff_GrowsOnFailureAndResetsOnSuccess(t *testing.T) {
	t.Parallel()

	var failing atomic.Bool
	failing.Store(true)
	buf := spanbuffer.New(10)
	tr := &stubTransport{send: func(context.Context, int) error {
		if failing.Load() {
			return errCollectorDown
		}
		return nil
	}}
	cfg := reporter.Config{FlushInterval: 100 * time.Millisecond, MaxBackoff: time.Second}
	r := reporter.New(buf, tr, newEncoder(t), cfg)

	assert.Equal(t, cfg.FlushInterval, r.Stats().NextDelay)

	buf.Append(newSpan("a"))
	var delays []time.Duration
	for i := 0; i < 5; i++ {
		require.Error(t, r.FlushAndWait(context.Background()))
		delays = append(delays, r.Stats().NextDelay)
	}

	for _, d := range delays {
		assert.GreaterOrEqual(t, d, cfg.FlushInterval)
		assert.LessOrEqual(t, d, cfg.MaxBackoff)
	}
	assert.Greater(t, delays[4], delays[0])
	assert.Equal(t, uint64(5), r.Stats().ConsecutiveFailures)

	failing.Store(false)
	require.NoError(t, r.FlushAndWait(context.Background()))
	stats := r.Stats()
	assert.Equal(t, cfg.FlushInterval, stats.NextDelay)
	assert.Zero(t, stats.ConsecutiveFailures)
	assert.Equal(t, uint64(5), stats.Failures)
}

func TestBackoff_CappedAtMaxBackoff(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	tr := &stubTransport{send: func(context.Context, int) error { return errCollectorDown }}
	cfg := reporter.Config{FlushInterval: 50 * time.Millisecond, MaxBackoff: 120 * time.Millisecond}
	r := reporter.New(buf, tr, newEncoder(t), cfg)

	buf.Append(newSpan("a"))
	for i := 0; i < 12; i++ {
		require.Error(t, r.FlushAndWait(context.Background()))
		assert.LessOrEqual(t, r.Stats().NextDelay, cfg.MaxBackoff)
	}
}

func TestStart_FlushesPeriodically(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{FlushInterval: 10 * time.Millisecond})
	r.Start()
	r.Start()
	t.Cleanup(func() { _ = r.Stop(context.Background()) })

	buf.Append(newSpan("a"))
	require.Eventually(t, func() bool { return len(tr.sent()) == 1 }, 2*time.Second, 5*time.Millisecond)

	buf.Append(newSpan("b"))
	require.Eventually(t, func() bool { return len(tr.sent()) == 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestStart_ZeroIntervalIsManualOnly(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{})
	r.Start()

	buf.Append(newSpan("a"))
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, tr.calls.Load())

	require.NoError(t, r.Stop(context.Background()))
	assert.Equal(t, int32(1), tr.calls.Load())
}

func TestStop_SendsRemainingSpans(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	enc := newEncoder(t)
	tr := &stubTransport{}
	r := reporter.New(buf, tr, enc, reporter.Config{FlushInterval: time.Hour})
	r.Start()

	buf.Append(newSpan("a"))
	require.NoError(t, r.Stop(context.Background()))

	sent := tr.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"a"}, operations(decode(t, enc, sent[0])))
	assert.True(t, r.Stopped())
	assert.False(t, buf.Append(newSpan("late")))

	require.NoError(t, r.Stop(context.Background()))
}

func TestStop_BoundedWhenTransportHangs(t *testing.T) {
	t.Parallel()

	sendErr := make(chan error, 1)
	buf := spanbuffer.New(10)
	tr := &stubTransport{send: func(ctx context.Context, _ int) error {
		<-ctx.Done()
		sendErr <- ctx.Err()
		return ctx.Err()
	}}
	obs := &recordingObserver{}
	cfg := reporter.Config{SendTimeout: time.Minute, StopTimeout: 50 * time.Millisecond}
	r := reporter.New(buf, tr, newEncoder(t), cfg, reporter.WithObserver(obs))

	buf.Append(newSpan("a"))

	start := time.Now()
	err := r.Stop(context.Background())
	assert.Less(t, time.Since(start), 2*time.Second)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case err := <-sendErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight send was not cancelled")
	}
	assert.True(t, r.Stopped())
}

func TestStop_HonorsCallerContext(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	tr := &stubTransport{send: func(ctx context.Context, _ int) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{StopTimeout: time.Minute})

	buf.Append(newSpan("a"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	require.Error(t, r.Stop(ctx))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestStop_DiscardsWhatCouldNotBeSent(t *testing.T) {
	t.Parallel()

	buf := spanbuffer.New(10)
	tr := &stubTransport{send: func(context.Context, int) error { return errCollectorDown }}
	obs := &recordingObserver{}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{}, reporter.WithObserver(obs))

	buf.Append(newSpan("a"))
	buf.Append(newSpan("b"))

	require.ErrorIs(t, r.Stop(context.Background()), errCollectorDown)
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, uint64(2), r.Stats().SpansDropped)

	drops := obs.find("drop")
	require.Len(t, drops, 1)
	assert.Equal(t, "shutdown", drops[0].Metadata["reason"])
	assert.Equal(t, int64(2), drops[0].Size)
}

func TestFlush_AfterStopAnswersErrStopped(t *testing.T) {
	t.Parallel()

	tr := &stubTransport{}
	r := reporter.New(spanbuffer.New(10), tr, newEncoder(t), reporter.Config{})
	require.NoError(t, r.Stop(context.Background()))

	done := make(chan error, 1)
	r.Flush(func(err error) { done <- err })
	select {
	case err := <-done:
		assert.ErrorIs(t, err, reporter.ErrStopped)
	case <-time.After(time.Second):
		t.Fatal("callback not called")
	}

	assert.ErrorIs(t, r.FlushAndWait(context.Background()), reporter.ErrStopped)
	r.Flush(nil)
	assert.Zero(t, tr.calls.Load())
}

func TestStop_AnswersQueuedCallbacks(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	buf := spanbuffer.New(10)
	tr := &stubTransport{send: func(ctx context.Context, _ int) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return ctx.Err()
	}}
	r := reporter.New(buf, tr, newEncoder(t), reporter.Config{StopTimeout: 20 * time.Millisecond})

	buf.Append(newSpan("a"))
	inFlight := make(chan error, 1)
	r.Flush(func(err error) { inFlight <- err })
	require.Eventually(t, func() bool { return tr.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	queued := make(chan error, 1)
	r.Flush(func(err error) { queued <- err })

	require.Error(t, r.Stop(context.Background()))

	select {
	case err := <-queued:
		assert.ErrorIs(t, err, reporter.ErrStopped)
	case <-time.After(time.Second):
		t.Fatal("queued callback not answered")
	}
	select {
	case err := <-inFlight:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("in-flight callback not answered")
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	r := reporter.New(spanbuffer.New(1), &stubTransport{}, newEncoder(t), reporter.Config{FlushInterval: -time.Second})
	cfg := r.Config()
	assert.Zero(t, cfg.FlushInterval)
	assert.Equal(t, reporter.DefaultMaxPayloadSize, cfg.MaxPayloadSize)
	assert.Equal(t, reporter.DefaultSendTimeout, cfg.SendTimeout)
	assert.Equal(t, reporter.DefaultStopTimeout, cfg.StopTimeout)
	assert.Equal(t, reporter.DefaultMaxBackoff, cfg.MaxBackoff)
}
