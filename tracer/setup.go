package tracer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/aalemi-dev/lstrace/model"
	"github.com/aalemi-dev/lstrace/observability"
	"github.com/aalemi-dev/lstrace/payload"
	"github.com/aalemi-dev/lstrace/reporter"
	"github.com/aalemi-dev/lstrace/spanbuffer"
	"github.com/aalemi-dev/lstrace/transport"
)

// Tracer creates spans and ships them, once finished, to a collector through a transport.
//
// A Tracer owns one span buffer and one reporter. It is safe for concurrent use. A disabled
// tracer, whether built from an invalid configuration or shut down, hands out inert spans so
// instrumented code never has to check the tracer's state.
type Tracer struct {
	cfg       Config
	guid      string
	enabled   atomic.Bool
	ids       *model.IDGenerator
	buf       *spanbuffer.Buffer
	reporter  *reporter.Reporter
	transport transport.Transport
	encoder   payload.Encoder
	logger    Logger
	observer  observability.Observer

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewTracer builds a tracer that reports through t.
//
// An invalid configuration does not return a nil tracer: NewTracer returns a disabled
// tracer together with ErrMissingAccessToken or ErrMissingTransport, so callers may log the
// error and carry on without tracing. Config.Disabled yields a disabled tracer and no error.
//
// The periodic reporter does not run until Start is called.
//
// Example:
//
//	tr, err := transport.NewGRPCTransport(transport.GRPCConfig{}, transport.Options{AccessToken: token})
//	if err != nil {
//	    return err
//	}
//	t, err := tracer.NewTracer(tracer.Config{AccessToken: token, ComponentName: "checkout"}, tr)
//	if err != nil {
//	    log.Warn("tracing disabled", err, nil)
//	}
//	t.Start()
//	defer t.Shutdown(context.Background())
func NewTracer(cfg Config, t transport.Transport, opts ...Option) (*Tracer, error) {
	tracer := &Tracer{
		cfg:       cfg.withDefaults(),
		guid:      uuid.NewString(),
		ids:       model.NewIDGenerator(),
		transport: t,
	}
	for _, opt := range opts {
		opt(tracer)
	}

	if err := tracer.setup(); err != nil {
		if tracer.logger != nil {
			tracer.logger.ErrorWithContext(context.Background(), "tracing disabled: invalid configuration", err, map[string]interface{}{
				"component": tracer.cfg.ComponentName,
			})
		}
		return tracer, err
	}
	return tracer, nil
}

func (t *Tracer) setup() error {
	if t.cfg.Disabled {
		return nil
	}
	if t.cfg.AccessToken == "" {
		return ErrMissingAccessToken
	}
	if t.transport == nil {
		return ErrMissingTransport
	}

	if t.encoder == nil {
		enc, err := payload.NewJSONEncoder(t.cfg.Payload)
		if err != nil {
			return fmt.Errorf("tracer: build encoder: %w", err)
		}
		t.encoder = enc
	}

	if d, ok := t.transport.(transport.ReportDescriber); ok {
		d.DescribeReports(transport.ReportMeta{
			ReporterGUID:    t.guid,
			ContentType:     t.encoder.ContentType(),
			ContentEncoding: t.encoder.ContentEncoding(),
		})
	}

	tags := make(map[string]interface{}, len(t.cfg.Tags)+2)
	for k, v := range t.cfg.Tags {
		tags[k] = v
	}
	tags[payload.TagComponentName] = t.cfg.ComponentName
	tags[payload.TagGUID] = t.guid

	t.buf = spanbuffer.New(t.cfg.MaxSpanRecords)

	ropts := []reporter.Option{reporter.WithReportMeta(t.guid, t.cfg.ComponentName, tags)}
	if t.logger != nil {
		ropts = append(ropts, reporter.WithLogger(t.logger))
	}
	if t.observer != nil {
		ropts = append(ropts, reporter.WithObserver(t.observer))
	}
	t.reporter = reporter.New(t.buf, t.transport, t.encoder, t.cfg.Reporter, ropts...)

	t.enabled.Store(true)
	return nil
}
