package metrics

// Default addresses for metrics servers if none is specified.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"
)

// DefaultDurationBuckets are the histogram buckets, in seconds, for pipeline operation
// durations. Span reports usually complete in milliseconds but a slow collector can hold a
// send for the whole send timeout.
var DefaultDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// DefaultSizeBuckets are the histogram buckets, in bytes, for report payload sizes.
var DefaultSizeBuckets = []float64{256, 1024, 4096, 16384, 65536, 262144, 524288, 1048576, 4194304}

// Config defines the configuration for the Prometheus metrics servers.
//
// Two endpoints are exposed: the system endpoint carries Go runtime, process and build info
// metrics, the application endpoint carries the tracing pipeline metrics.
type Config struct {
	// SystemMetricsAddress is the listen address of the system metrics server.
	// nil selects DefaultSystemMetricsAddress, a pointer to "" disables the server.
	SystemMetricsAddress *string `yaml:"system_metrics_address" envconfig:"METRICS_SYSTEM_ADDRESS"`

	// ApplicationMetricsAddress is the listen address of the application metrics server.
	// nil selects DefaultApplicationMetricsAddress, a pointer to "" disables the server.
	ApplicationMetricsAddress *string `yaml:"application_metrics_address" envconfig:"METRICS_APPLICATION_ADDRESS"`

	// ServiceName is added as a constant "service" label to every metric.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// Ptr returns a pointer to the given string value.
// Helper function for disabling endpoints in configuration.
//
// Example:
//
//	cfg := metrics.Config{
//	    SystemMetricsAddress: metrics.Ptr(""), // Explicitly disable
//	    ServiceName:          "checkout",
//	}
func Ptr(s string) *string {
	return &s
}

func addressOrDefault(addr *string, def string) string {
	if addr == nil {
		return def
	}
	return *addr
}
