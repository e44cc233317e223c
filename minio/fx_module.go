package minio

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/lstrace/logger"
	"github.com/aalemi-dev/lstrace/observability"
)

// FXModule is an fx.Module that provides the object-store report sink.
//
// The module provides:
// 1. *MinioClient (concrete type) for direct use
// 2. Client interface for dependency injection
// 3. Lifecycle management: the bucket is created on start when configured
//
// Usage:
//
//	app := fx.New(
//	    minio.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("minio",
	fx.Provide(
		NewMinioClientWithDI,
		fx.Annotate(
			func(m *MinioClient) Client { return m },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterLifecycle),
)

type MinioParams struct {
	fx.In

	Config   Config
	Logger   *logger.LoggerClient   `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

func NewMinioClientWithDI(params MinioParams) (*MinioClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		client.logger = params.Logger
	}
	if params.Observer != nil {
		client.observer = params.Observer
	}

	return client, nil
}

type MinioLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Minio     *MinioClient
}

// RegisterLifecycle creates the bucket on start (when Config.CreateBucket is set) and
// closes the client on stop.
func RegisterLifecycle(params MinioLifeCycleParams) {
	if params.Minio == nil {
		return
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !params.Minio.cfg.CreateBucket {
				return nil
			}
			return params.Minio.EnsureBucket(ctx)
		},
		OnStop: func(ctx context.Context) error {
			params.Minio.logInfo(ctx, "closing minio client", nil)
			return params.Minio.Close()
		},
	})
}
