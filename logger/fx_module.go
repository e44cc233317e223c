package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *LoggerClient and the Logger interface from a logger.Config, and syncs
// the logger on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    config.Provide("lstrace.yaml"),
//	    logger.FXModule,
//	    tracer.FXModule,
//	)
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
		func(l *LoggerClient) Logger { return l },
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle syncs the logger when the application stops. The tracer module
// stops the reporter before this hook runs, so the reporter's final entries are flushed too.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr fails with EINVAL on most terminals; losing that error is fine.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
