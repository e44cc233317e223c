package transport

import (
	"time"

	"github.com/aalemi-dev/lstrace/kafka"
	"github.com/aalemi-dev/lstrace/minio"
	"github.com/aalemi-dev/lstrace/observability"
)

// Transport kinds accepted by New.
const (
	KindGRPC  = "grpc"
	KindHTTP  = "http"
	KindKafka = "kafka"
	KindMinio = "minio"
)

// Defaults applied when the corresponding field is zero.
const (
	DefaultGRPCEndpoint     = "collector-grpc.lightstep.com:443"
	DefaultGRPCMethod       = "/lstrace.collector.Collector/Report"
	DefaultKeepaliveTime    = 60 * time.Second
	DefaultKeepaliveTimeout = 20 * time.Second
	DefaultMaxMessageSize   = 4 * 1024 * 1024

	DefaultHTTPPath    = "/api/v2/reports"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultUserAgent   = "lstrace-go"
)

// Header and metadata names sent with every report.
const (
	HeaderAccessToken     = "Lightstep-Access-Token"
	HeaderContentType     = "Content-Type"
	HeaderContentEncoding = "Content-Encoding"
	HeaderReporterID      = "Lightstep-Reporter-Id"

	// gRPC reserves content-type, so the payload encoding travels under its own keys.
	MetadataPayloadType     = "lstrace-payload-type"
	MetadataPayloadEncoding = "lstrace-payload-encoding"
)

// Config selects and configures the collector transport.
type Config struct {
	// Kind is one of "grpc", "http", "kafka" or "minio". Default: "grpc"
	Kind string `yaml:"kind" envconfig:"TRANSPORT_KIND"`

	GRPC  GRPCConfig   `yaml:"grpc"`
	HTTP  HTTPConfig   `yaml:"http"`
	Kafka kafka.Config `yaml:"kafka"`
	Minio minio.Config `yaml:"minio"`
}

// GRPCConfig configures the gRPC collector transport.
type GRPCConfig struct {
	// Endpoint is the collector host:port
	Endpoint string `yaml:"endpoint" envconfig:"TRANSPORT_GRPC_ENDPOINT"`

	// Plaintext disables TLS on the connection
	Plaintext bool `yaml:"plaintext" envconfig:"TRANSPORT_GRPC_PLAINTEXT"`

	// Method is the full unary method name invoked with the encoded report
	Method string `yaml:"method" envconfig:"TRANSPORT_GRPC_METHOD"`

	// KeepaliveTime is the interval between client pings on an active connection
	KeepaliveTime time.Duration `yaml:"keepalive_time" envconfig:"TRANSPORT_GRPC_KEEPALIVE_TIME"`

	// KeepaliveTimeout is how long to wait for a ping acknowledgment
	KeepaliveTimeout time.Duration `yaml:"keepalive_timeout" envconfig:"TRANSPORT_GRPC_KEEPALIVE_TIMEOUT"`

	// MaxMessageSize caps request and response sizes
	MaxMessageSize int `yaml:"max_message_size" envconfig:"TRANSPORT_GRPC_MAX_MESSAGE_SIZE"`
}

// HTTPConfig configures the HTTP collector transport.
type HTTPConfig struct {
	// URL is the collector base URL, e.g. "https://collector.lightstep.com"
	URL string `yaml:"url" envconfig:"TRANSPORT_HTTP_URL"`

	// Path is appended to URL for report requests
	Path string `yaml:"path" envconfig:"TRANSPORT_HTTP_PATH"`

	// Timeout bounds each request on top of the caller's context
	Timeout time.Duration `yaml:"timeout" envconfig:"TRANSPORT_HTTP_TIMEOUT"`

	// MaxRetries is the number of in-request retries for network errors and 5xx responses.
	// Default 0: the reporter retries on its next cycle instead.
	MaxRetries int `yaml:"max_retries" envconfig:"TRANSPORT_HTTP_MAX_RETRIES"`

	// RateLimit caps requests per second; zero means unlimited
	RateLimit float64 `yaml:"rate_limit" envconfig:"TRANSPORT_HTTP_RATE_LIMIT"`

	// UserAgent is sent with every request
	UserAgent string `yaml:"user_agent" envconfig:"TRANSPORT_HTTP_USER_AGENT"`
}

// Options carries construction-time values shared by every transport kind.
type Options struct {
	// AccessToken authenticates reports with the collector
	AccessToken string

	Logger   Logger
	Observer observability.Observer
}
