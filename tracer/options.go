package tracer

import (
	"time"

	"github.com/aalemi-dev/lstrace/model"
	"github.com/aalemi-dev/lstrace/observability"
	"github.com/aalemi-dev/lstrace/payload"
)

// Option configures a Tracer.
type Option func(*Tracer)

// WithLogger attaches a logger for configuration problems and delivery failures.
func WithLogger(l Logger) Option {
	return func(t *Tracer) {
		t.logger = l
	}
}

// WithObserver attaches an observer that receives buffer drops and every reporter operation.
func WithObserver(o observability.Observer) Option {
	return func(t *Tracer) {
		t.observer = o
	}
}

// WithEncoder replaces the JSON encoder built from Config.Payload.
func WithEncoder(enc payload.Encoder) Option {
	return func(t *Tracer) {
		t.encoder = enc
	}
}

// StartSpanOptions collects the settings applied by StartSpanOption values.
type StartSpanOptions struct {
	References []model.Reference
	Tags       map[string]interface{}
	StartTime  time.Time

	// AutoFinish, when positive, finishes the span after this long unless it was
	// finished earlier.
	AutoFinish time.Duration
}

// StartSpanOption configures a span at creation.
type StartSpanOption func(*StartSpanOptions)

// ChildOf makes the new span a child of parent. Invalid contexts are ignored.
func ChildOf(parent model.SpanContext) StartSpanOption {
	return WithReferences(model.Reference{Type: model.ChildOf, Context: parent})
}

// FollowsFrom links the new span to a span that does not wait for it. Invalid contexts are
// ignored.
func FollowsFrom(parent model.SpanContext) StartSpanOption {
	return WithReferences(model.Reference{Type: model.FollowsFrom, Context: parent})
}

// WithReferences adds references. References to invalid contexts are ignored.
func WithReferences(refs ...model.Reference) StartSpanOption {
	return func(o *StartSpanOptions) {
		for _, ref := range refs {
			if ref.Context.IsValid() {
				o.References = append(o.References, ref)
			}
		}
	}
}

// WithTags sets initial tags.
func WithTags(tags map[string]interface{}) StartSpanOption {
	return func(o *StartSpanOptions) {
		for k, v := range tags {
			WithTag(k, v)(o)
		}
	}
}

// WithTag sets one initial tag.
func WithTag(key string, value interface{}) StartSpanOption {
	return func(o *StartSpanOptions) {
		if o.Tags == nil {
			o.Tags = make(map[string]interface{})
		}
		o.Tags[key] = value
	}
}

// WithStartTime sets an explicit start time instead of now.
func WithStartTime(t time.Time) StartSpanOption {
	return func(o *StartSpanOptions) {
		o.StartTime = t
	}
}

// WithAutoFinish finishes the span after d if the caller has not finished it by then.
// Auto-finished spans carry the AutoFinishedTag.
func WithAutoFinish(d time.Duration) StartSpanOption {
	return func(o *StartSpanOptions) {
		o.AutoFinish = d
	}
}

// parent picks the context a new span inherits from: the first child-of reference, or the
// first reference of any kind when there is no child-of.
func (o *StartSpanOptions) parent() (model.SpanContext, bool) {
	for _, ref := range o.References {
		if ref.Type == model.ChildOf {
			return ref.Context, true
		}
	}
	if len(o.References) > 0 {
		return o.References[0].Context, true
	}
	return model.SpanContext{}, false
}
