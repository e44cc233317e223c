package payload

// Compression names accepted in Config.Compression.
const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

// ContentTypeJSON is the media type of reports produced by JSONEncoder.
const ContentTypeJSON = "application/json"

// Standard tag keys the encoder attaches to every reporter.
const (
	TagComponentName = "lightstep.component_name"
	TagGUID          = "lightstep.guid"
)

// Metric names carried in a report's internal metrics.
const (
	MetricSpansDropped = "spans.dropped"
	MetricLogsDropped  = "logs.dropped"
)

// Config holds encoder settings.
type Config struct {
	// Compression is one of "none", "gzip" or "zstd". Empty means "none".
	Compression string `yaml:"compression" envconfig:"PAYLOAD_COMPRESSION"`
}
