package config

import (
	"go.uber.org/fx"

	"github.com/aalemi-dev/lstrace/logger"
	"github.com/aalemi-dev/lstrace/metrics"
	"github.com/aalemi-dev/lstrace/tracer"
	"github.com/aalemi-dev/lstrace/transport"
)

// FXModule splits a *Config into the per-component values the other modules depend on.
// The *Config itself comes from Provide or from the application.
//
// Usage:
//
//	app := fx.New(
//	    config.Provide("lstrace.yaml"),
//	    logger.FXModule,
//	    metrics.FXModule,
//	    transport.FXModule,
//	    tracer.FXModule,
//	)
var FXModule = fx.Module("config",
	fx.Provide(
		func(c *Config) logger.Config { return c.Logger },
		func(c *Config) metrics.Config { return c.Metrics },
		func(c *Config) transport.Config { return c.Transport },
		func(c *Config) tracer.Config { return c.Tracer },
	),
)

// Provide loads the configuration with Load(path) and includes FXModule.
func Provide(path string) fx.Option {
	return fx.Options(
		fx.Provide(func() (*Config, error) { return Load(path) }),
		FXModule,
	)
}
