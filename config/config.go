package config

import (
	"github.com/aalemi-dev/lstrace/logger"
	"github.com/aalemi-dev/lstrace/metrics"
	"github.com/aalemi-dev/lstrace/payload"
	"github.com/aalemi-dev/lstrace/reporter"
	"github.com/aalemi-dev/lstrace/tracer"
	"github.com/aalemi-dev/lstrace/transport"
)

// Config groups the configuration of every component.
type Config struct {
	Logger    logger.Config    `yaml:"logger"`
	Metrics   metrics.Config   `yaml:"metrics"`
	Transport transport.Config `yaml:"transport"`
	Tracer    tracer.Config    `yaml:"tracer"`
}

// Default returns the configuration used when neither a file nor the environment say otherwise.
func Default() *Config {
	return &Config{
		Logger: logger.Config{
			Level:    logger.Info,
			Encoding: "json",
		},
		Transport: transport.Config{
			Kind: transport.KindGRPC,
			GRPC: transport.GRPCConfig{
				Endpoint: transport.DefaultGRPCEndpoint,
			},
		},
		Tracer: tracer.Config{
			MaxSpanRecords: tracer.DefaultMaxSpanRecords,
			MaxLogsPerSpan: tracer.DefaultMaxLogsPerSpan,
			Reporter: reporter.Config{
				FlushInterval:  reporter.DefaultFlushInterval,
				MaxPayloadSize: reporter.DefaultMaxPayloadSize,
				SendTimeout:    reporter.DefaultSendTimeout,
				StopTimeout:    reporter.DefaultStopTimeout,
				MaxBackoff:     reporter.DefaultMaxBackoff,
			},
			Payload: payload.Config{
				Compression: payload.CompressionNone,
			},
		},
	}
}
