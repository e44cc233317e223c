package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/lstrace/logger"
	"github.com/aalemi-dev/lstrace/observability"
	"github.com/aalemi-dev/lstrace/transport"
)

// FXModule provides a *Tracer built from a tracer.Config and a transport.Transport, starts
// its reporter with the application and shuts it down, after a final flush, on stop.
//
// It also provides the transport.AccessToken taken from Config.AccessToken, so
// transport.FXModule authenticates with the same token.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    transport.FXModule,
//	    tracer.FXModule,
//	    fx.Supply(cfg.Logger, cfg.Metrics, cfg.Transport, cfg.Tracer),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewTracerWithDI,
		AccessTokenFromConfig,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies for creating a Tracer.
type TracerParams struct {
	fx.In

	Config    Config
	Transport transport.Transport
	Logger    *logger.LoggerClient   `optional:"true"`
	Observer  observability.Observer `optional:"true"`
}

// NewTracerWithDI builds the tracer. Unlike NewTracer it fails on an invalid configuration,
// which aborts application startup.
func NewTracerWithDI(params TracerParams) (*Tracer, error) {
	var opts []Option
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger.Named("tracer")))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	return NewTracer(params.Config, params.Transport, opts...)
}

// AccessTokenFromConfig exposes the tracer's access token to the transport module.
func AccessTokenFromConfig(cfg Config) transport.AccessToken {
	return transport.AccessToken(cfg.AccessToken)
}

// RegisterTracerLifecycle starts the reporter on start and shuts the tracer down on stop.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			t.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return t.Shutdown(ctx)
		},
	})
}
