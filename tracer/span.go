package tracer

import (
	"fmt"
	"sync"
	"time"

	"github.com/aalemi-dev/lstrace/model"
)

type spanImpl struct {
	tracer  *Tracer
	maxLogs int

	mu         sync.Mutex
	raw        model.RawSpan
	finished   bool
	autoFinish *time.Timer
}

func (s *spanImpl) Context() model.SpanContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Context
}

func (s *spanImpl) SetOperationName(name string) Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finished {
		s.raw.Operation = name
	}
	return s
}

func (s *spanImpl) SetTag(key string, value interface{}) Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setTagLocked(key, value)
	return s
}

func (s *spanImpl) SetAttributes(attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range attrs {
		s.setTagLocked(k, v)
	}
}

func (s *spanImpl) setTagLocked(key string, value interface{}) {
	if s.finished {
		return
	}
	if s.raw.Tags == nil {
		s.raw.Tags = make(map[string]interface{})
	}
	s.raw.Tags[key] = model.NormalizeTagValue(value)
}

func (s *spanImpl) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setTagLocked("error", true)
	s.logLocked(time.Now(), map[string]interface{}{
		"event":   "error",
		"message": err.Error(),
	})
}

func (s *spanImpl) LogFields(fields map[string]interface{}) {
	s.LogAt(time.Now(), fields)
}

func (s *spanImpl) LogKV(keyValues ...interface{}) {
	if len(keyValues) < 2 {
		return
	}
	fields := make(map[string]interface{}, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			key = fmt.Sprint(keyValues[i])
		}
		fields[key] = keyValues[i+1]
	}
	s.LogAt(time.Now(), fields)
}

func (s *spanImpl) LogAt(t time.Time, fields map[string]interface{}) {
	if len(fields) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logLocked(t, fields)
}

func (s *spanImpl) logLocked(t time.Time, fields map[string]interface{}) {
	if s.finished {
		return
	}
	if len(s.raw.Logs) >= s.maxLogs {
		s.raw.DroppedLogs++
		return
	}
	normalized := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		normalized[k] = model.NormalizeTagValue(v)
	}
	s.raw.Logs = append(s.raw.Logs, model.LogRecord{Timestamp: t, Fields: normalized})
}

func (s *spanImpl) SetBaggageItem(key, value string) Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finished {
		s.raw.Context = s.raw.Context.WithBaggageItem(key, value)
	}
	return s
}

func (s *spanImpl) BaggageItem(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Context.BaggageItem(key)
}

func (s *spanImpl) Finish() {
	s.finish(time.Now(), false)
}

func (s *spanImpl) FinishAt(t time.Time) {
	s.finish(t, false)
}

func (s *spanImpl) IsFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// finish closes the span exactly once. The caller's Finish and the auto-finish timer race
// here; whichever takes the lock first wins.
func (s *spanImpl) finish(t time.Time, auto bool) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	if s.autoFinish != nil {
		s.autoFinish.Stop()
	}
	if auto {
		if s.raw.Tags == nil {
			s.raw.Tags = make(map[string]interface{}, 1)
		}
		s.raw.Tags[AutoFinishedTag] = true
	}
	if t.Before(s.raw.Start) {
		t = s.raw.Start
	}
	s.raw.Finish = t
	record := s.raw
	s.mu.Unlock()

	s.tracer.record(&record)
}

// noopSpan is handed out by disabled tracers. Every method does nothing.
type noopSpan struct{}

func (noopSpan) Context() model.SpanContext              { return model.SpanContext{} }
func (n noopSpan) SetOperationName(string) Span          { return n }
func (n noopSpan) SetTag(string, interface{}) Span       { return n }
func (noopSpan) SetAttributes(map[string]interface{})    {}
func (noopSpan) RecordError(error)                       {}
func (noopSpan) LogFields(map[string]interface{})        {}
func (noopSpan) LogKV(...interface{})                    {}
func (noopSpan) LogAt(time.Time, map[string]interface{}) {}
func (n noopSpan) SetBaggageItem(string, string) Span    { return n }
func (noopSpan) BaggageItem(string) string               { return "" }
func (noopSpan) Finish()                                 {}
func (noopSpan) FinishAt(time.Time)                      {}
func (noopSpan) IsFinished() bool                        { return false }
