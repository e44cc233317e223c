package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient wraps a zap.Logger with the field-map API used across lstrace.
//
// LoggerClient implements the Logger interface, and therefore the narrow Logger interfaces
// declared by the reporter, tracer and transport packages.
type LoggerClient struct {
	// Zap is the underlying logger, exposed for zap-specific needs such as Sync.
	Zap *zap.Logger

	// tracingEnabled makes the *WithContext methods add trace_id and span_id.
	tracingEnabled bool
}

// NewLoggerClient builds a zap logger from cfg.
//
// Entries are JSON (or console) encoded with an ISO8601 "timestamp", a capitalised level, the
// full caller path and the "pid" and "service" fields. Output goes to cfg.OutputPaths, stderr
// when empty. A configuration zap cannot build, such as an unwritable output path, is fatal.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:         logger.Info,
//	    ServiceName:   "checkout",
//	    EnableTracing: true,
//	})
//	log.Info("span reporter started", nil, map[string]interface{}{"flush_interval": "2.5s"})
func NewLoggerClient(cfg Config) *LoggerClient {
	z, err := zapConfig(cfg).Build(zapOptions(cfg)...)
	if err != nil {
		log.Fatal(err)
	}

	return &LoggerClient{
		Zap:            z,
		tracingEnabled: cfg.EnableTracing,
	}
}

// With returns a logger that adds fields to every entry, e.g. the reporter GUID.
func (l *LoggerClient) With(fields map[string]interface{}) *LoggerClient {
	return &LoggerClient{
		Zap:            l.Zap.With(toZapFields(nil, fields)...),
		tracingEnabled: l.tracingEnabled,
	}
}

// Named returns a logger whose entries carry name in the "logger" field.
func (l *LoggerClient) Named(name string) *LoggerClient {
	return &LoggerClient{
		Zap:            l.Zap.Named(name),
		tracingEnabled: l.tracingEnabled,
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func zapConfig(cfg Config) zap.Config {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.FullCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	encoding := EncodingJSON
	if cfg.Encoding == EncodingConsole {
		encoding = EncodingConsole
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	return zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}
}

// zapOptions adds caller reporting. The extra skipped frame is the write helper every
// level method goes through.
func zapOptions(cfg Config) []zap.Option {
	callerSkip := cfg.CallerSkip
	if callerSkip <= 0 {
		callerSkip = 1
	}
	return []zap.Option{zap.AddCaller(), zap.AddCallerSkip(callerSkip + 1)}
}
