package reporter

import "time"

// Default values for configuration
const (
	DefaultFlushInterval  = 2500 * time.Millisecond
	DefaultMaxPayloadSize = 512 * 1024
	DefaultSendTimeout    = 30 * time.Second
	DefaultStopTimeout    = 5 * time.Second
	DefaultMaxBackoff     = 5 * time.Minute

	// manualBackoffBase seeds the backoff when there is no flush interval to grow from.
	manualBackoffBase = time.Second
)

// Config controls when and how the reporter ships buffered spans.
type Config struct {
	// FlushInterval is the period of automatic report cycles. Zero disables the timer and
	// leaves flushing to explicit Flush calls.
	FlushInterval time.Duration `yaml:"flush_interval" envconfig:"REPORTER_FLUSH_INTERVAL"`

	// MaxPayloadSize is the estimated upper bound of one encoded report, in bytes.
	// Larger drains are split into several reports.
	MaxPayloadSize int `yaml:"max_payload_size" envconfig:"REPORTER_MAX_PAYLOAD_SIZE"`

	// SendTimeout bounds each transport call.
	SendTimeout time.Duration `yaml:"send_timeout" envconfig:"REPORTER_SEND_TIMEOUT"`

	// StopTimeout bounds the final flush performed by Stop.
	StopTimeout time.Duration `yaml:"stop_timeout" envconfig:"REPORTER_STOP_TIMEOUT"`

	// MaxBackoff caps the delay between automatic cycles after repeated failures.
	MaxBackoff time.Duration `yaml:"max_backoff" envconfig:"REPORTER_MAX_BACKOFF"`
}

// withDefaults fills zero fields. FlushInterval is left alone: zero is meaningful.
func (c Config) withDefaults() Config {
	if c.MaxPayloadSize <= 0 {
		c.MaxPayloadSize = DefaultMaxPayloadSize
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = DefaultSendTimeout
	}
	if c.StopTimeout <= 0 {
		c.StopTimeout = DefaultStopTimeout
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = DefaultMaxBackoff
	}
	if c.FlushInterval < 0 {
		c.FlushInterval = 0
	}
	return c
}
