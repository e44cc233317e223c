package tracer

import (
	"os"
	"path/filepath"

	"github.com/aalemi-dev/lstrace/payload"
	"github.com/aalemi-dev/lstrace/reporter"
	"github.com/aalemi-dev/lstrace/spanbuffer"
)

// Default values for configuration
const (
	DefaultMaxSpanRecords = spanbuffer.DefaultMaxSpanRecords
	DefaultMaxLogsPerSpan = 256

	// AutoFinishedTag is set on spans closed by WithAutoFinish rather than by Finish.
	AutoFinishedTag = "lstrace.auto_finished"
)

// Config is everything a Tracer needs besides its transport. It is read once by NewTracer.
type Config struct {
	// AccessToken authenticates reports with the collector. Required.
	AccessToken string `yaml:"access_token" envconfig:"TRACER_ACCESS_TOKEN"`

	// ComponentName identifies the reporting service. Defaults to the executable name.
	ComponentName string `yaml:"component_name" envconfig:"TRACER_COMPONENT_NAME"`

	// Tags are attached to every report, e.g. "service.version".
	Tags map[string]string `yaml:"tags" envconfig:"TRACER_TAGS"`

	// MaxSpanRecords is the span buffer capacity. Finished spans beyond it are dropped and
	// counted until the next report drains the buffer.
	MaxSpanRecords int `yaml:"max_span_records" envconfig:"TRACER_MAX_SPAN_RECORDS"`

	// MaxLogsPerSpan caps the log records kept per span; extra records are counted, not kept.
	MaxLogsPerSpan int `yaml:"max_logs_per_span" envconfig:"TRACER_MAX_LOGS_PER_SPAN"`

	// Disabled builds a tracer that produces inert spans and never reports.
	Disabled bool `yaml:"disabled" envconfig:"TRACER_DISABLED"`

	Reporter reporter.Config `yaml:"reporter"`
	Payload  payload.Config  `yaml:"payload"`
}

func (c Config) withDefaults() Config {
	if c.ComponentName == "" {
		c.ComponentName = filepath.Base(os.Args[0])
	}
	if c.MaxSpanRecords <= 0 {
		c.MaxSpanRecords = DefaultMaxSpanRecords
	}
	if c.MaxLogsPerSpan <= 0 {
		c.MaxLogsPerSpan = DefaultMaxLogsPerSpan
	}
	return c
}
