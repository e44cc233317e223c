package logger

// Log level names accepted in Config.Level.
const (
	// Debug outputs every message, including the reporter's per-cycle diagnostics.
	Debug = "debug"

	// Info outputs lifecycle events (reporter start/stop, transport connect) and above.
	Info = "info"

	// Warning outputs only degraded-operation messages (failed flushes, dropped spans) and errors.
	Warning = "warning"

	// Error outputs only errors.
	Error = "error"
)

// Encodings accepted in Config.Encoding.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// Field names added to entries written through the *WithContext methods.
const (
	FieldTraceID = "trace_id"
	FieldSpanID  = "span_id"
)

// Config defines the configuration structure for the logger.
type Config struct {
	// Level determines the minimum log level that will be output.
	// Valid values are "debug", "info", "warning" and "error"; anything else means "info".
	Level string `yaml:"level" envconfig:"LOGGER_LEVEL"`

	// EnableTracing adds "trace_id" and "span_id" to entries written through the
	// *WithContext methods whenever the context carries a span started by the tracer.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName populates the "service" field of every entry.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// Encoding selects the zap encoder: "json" (default) or "console".
	Encoding string `yaml:"encoding" envconfig:"LOGGER_ENCODING"`

	// OutputPaths lists the sinks entries are written to. Defaults to stderr.
	OutputPaths []string `yaml:"output_paths" envconfig:"LOGGER_OUTPUT_PATHS"`

	// CallerSkip controls the number of stack frames to skip when reporting the caller.
	// Use 2 or more when the logger is wrapped by another helper. Defaults to 1.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`
}
