package reporter

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aalemi-dev/lstrace/observability"
	"github.com/aalemi-dev/lstrace/payload"
	"github.com/aalemi-dev/lstrace/spanbuffer"
	"github.com/aalemi-dev/lstrace/transport"
	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

const (
	stateIdle int32 = iota
	stateFlushing
	stateStopped
)

// Reporter moves finished spans from a buffer to a transport.
//
// At most one report cycle runs at a time. Flush requests that arrive while a cycle is
// running are folded into a single follow-up cycle, and every request's callback is called
// exactly once with the result of the cycle that covered it.
type Reporter struct {
	buf       *spanbuffer.Buffer
	transport transport.Transport
	encoder   payload.Encoder
	cfg       Config
	logger    Logger
	observer  observability.Observer
	meta      reportMeta

	state     atomic.Int32
	mu        sync.Mutex
	pending   []func(error)
	requested bool
	running   sync.WaitGroup

	// baseCtx parents every send; Stop cancels it to abort an in-flight send.
	baseCtx    context.Context
	cancelBase context.CancelFunc

	// backoff is only touched by the goroutine that owns the Flushing state.
	backoff *backoff.ExponentialBackOff

	statsMu sync.Mutex
	stats   Stats

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	stopCh    chan struct{}
	loopDone  chan struct{}

	failureLog rate.Sometimes
}

type reportMeta struct {
	guid      string
	component string
	tags      map[string]interface{}
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger attaches a logger for delivery failures and shutdown notices.
func WithLogger(l Logger) Option {
	return func(r *Reporter) {
		r.logger = l
	}
}

// WithObserver attaches an observer that receives "flush" and "drop" operations.
func WithObserver(o observability.Observer) Option {
	return func(r *Reporter) {
		r.observer = o
	}
}

// WithReportMeta sets the reporter identity stamped on every report.
func WithReportMeta(guid, component string, tags map[string]interface{}) Option {
	return func(r *Reporter) {
		copied := make(map[string]interface{}, len(tags))
		for k, v := range tags {
			copied[k] = v
		}
		r.meta = reportMeta{guid: guid, component: component, tags: copied}
	}
}

// New creates a reporter. It does nothing until Start or Flush is called.
func New(buf *spanbuffer.Buffer, t transport.Transport, enc payload.Encoder, cfg Config, opts ...Option) *Reporter {
	cfg = cfg.withDefaults()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.FlushInterval
	if bo.InitialInterval <= 0 {
		bo.InitialInterval = manualBackoffBase
	}
	bo.RandomizationFactor = 0.2
	bo.MaxInterval = cfg.MaxBackoff
	bo.Reset()

	baseCtx, cancel := context.WithCancel(context.Background())

	r := &Reporter{
		buf:        buf,
		transport:  t,
		encoder:    enc,
		cfg:        cfg,
		backoff:    bo,
		baseCtx:    baseCtx,
		cancelBase: cancel,
		stopCh:     make(chan struct{}),
		loopDone:   make(chan struct{}),
		failureLog: rate.Sometimes{First: 3, Interval: time.Minute},
	}
	r.stats.NextDelay = cfg.FlushInterval

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the effective configuration, defaults applied.
func (r *Reporter) Config() Config {
	return r.cfg
}
