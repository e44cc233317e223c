package transport

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/lstrace/logger"
	"github.com/aalemi-dev/lstrace/observability"
)

// AccessToken is the collector credential injected into the transport by fx.
type AccessToken string

// FXModule provides the Transport selected by Config.Kind and closes it on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    transport.FXModule,
//	    fx.Provide(func() transport.Config { return cfg.Transport }),
//	)
var FXModule = fx.Module("transport",
	fx.Provide(NewTransportWithDI),
	fx.Invoke(RegisterTransportLifecycle),
)

// TransportParams groups the dependencies needed to create a transport.
type TransportParams struct {
	fx.In

	Config      Config
	AccessToken AccessToken            `optional:"true"`
	Logger      *logger.LoggerClient   `optional:"true"`
	Observer    observability.Observer `optional:"true"`
}

// NewTransportWithDI builds the configured transport from injected dependencies.
func NewTransportWithDI(params TransportParams) (Transport, error) {
	opts := Options{
		AccessToken: string(params.AccessToken),
		Observer:    params.Observer,
	}
	if params.Logger != nil {
		opts.Logger = params.Logger.Named("transport")
	}
	return New(params.Config, opts)
}

// TransportLifecycleParams groups the dependencies for lifecycle management.
type TransportLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Transport Transport
	Logger    *logger.LoggerClient `optional:"true"`
}

// RegisterTransportLifecycle closes the transport when the application stops. fx runs stop
// hooks in reverse order, so the tracer's final flush happens before this.
func RegisterTransportLifecycle(params TransportLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			err := params.Transport.Close()
			if err != nil && params.Logger != nil {
				params.Logger.WarnWithContext(ctx, "failed to close transport", err)
			}
			return err
		},
	})
}
