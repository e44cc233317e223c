package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/lstrace/logger"
	"github.com/aalemi-dev/lstrace/observability"
)

// FXModule provides *Metrics, the MetricsCollector interface and an observability.Observer
// backed by the pipeline metrics, and runs both metrics servers for the app's lifetime.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{ServiceName: "checkout"}
//	    }),
//	)
//
// A metrics.Config and a *logger.LoggerClient must be available in the container.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
		fx.Annotate(
			func(c MetricsCollector) *PipelineObserver { return NewObserver(c) },
			fx.As(new(observability.Observer)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the configured metrics servers on start and shuts them
// down on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.LoggerClient) {
	servers := map[string]*http.Server{
		"system":      m.SystemServer,
		"application": m.ApplicationServer,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for name, srv := range servers {
				if srv == nil {
					continue
				}
				go func(name string, srv *http.Server) {
					log.Info("Starting metrics server", nil, map[string]interface{}{
						"server":  name,
						"address": srv.Addr,
					})
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("Metrics server stopped unexpectedly", err, map[string]interface{}{
							"server": name,
						})
					}
				}(name, srv)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var errs []error
			for name, srv := range servers {
				if srv == nil {
					continue
				}
				log.Info("Shutting down metrics server", nil, map[string]interface{}{"server": name})
				if err := srv.Shutdown(ctx); err != nil {
					log.Error("Error shutting down metrics server", err, map[string]interface{}{"server": name})
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	})
}
