package spanbuffer

import (
	"github.com/eapache/queue"

	"github.com/aalemi-dev/lstrace/model"
)

// Append adds a finished span. It reports whether the span was stored; a false result means
// the buffer was full (the drop counter was incremented) or closed.
func (b *Buffer) Append(span *model.RawSpan) bool {
	if span == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}

	b.counters.DroppedLogs += int64(span.DroppedLogs)
	if b.spans.Length() >= b.max {
		b.counters.DroppedSpans++
		return false
	}
	b.spans.Add(span)
	return true
}

// DrainAll removes and returns every buffered span, oldest first.
// Appends racing with the drain land either in the returned slice or in the emptied buffer.
func (b *Buffer) DrainAll() []*model.RawSpan {
	b.mu.Lock()
	drained := b.spans
	b.spans = queue.New()
	b.mu.Unlock()

	return toSlice(drained)
}

// Restore puts spans that failed to send back in front of the current contents, preserving
// oldest-first order. If the combined contents exceed the capacity the newest spans are
// dropped and counted. It returns the number of spans dropped.
func (b *Buffer) Restore(spans []*model.RawSpan) int {
	if len(spans) == 0 {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}

	current := toSlice(b.spans)
	next := queue.New()
	dropped := 0
	for _, group := range [][]*model.RawSpan{spans, current} {
		for _, s := range group {
			if s == nil {
				continue
			}
			if next.Length() >= b.max {
				dropped++
				continue
			}
			next.Add(s)
		}
	}
	b.spans = next
	b.counters.DroppedSpans += int64(dropped)
	return dropped
}

// SnapshotAndResetCounters returns the drop counters and zeroes them atomically.
func (b *Buffer) SnapshotAndResetCounters() Counters {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.counters
	b.counters = Counters{}
	return c
}

// AddCounters merges counters back, used when a report carrying them failed.
func (b *Buffer) AddCounters(c Counters) {
	if c.IsZero() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.counters = b.counters.Add(c)
}

// Counters returns the current drop counters without resetting them.
func (b *Buffer) Counters() Counters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counters
}

// Len returns the number of buffered spans.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spans.Length()
}

// Cap returns the configured capacity.
func (b *Buffer) Cap() int {
	return b.max
}

// Close discards the buffered spans and makes every later Append and Restore a no-op.
// It returns the number of spans discarded.
func (b *Buffer) Close() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}
	b.closed = true
	n := b.spans.Length()
	b.spans = queue.New()
	return n
}

// Closed reports whether Close has been called.
func (b *Buffer) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func toSlice(q *queue.Queue) []*model.RawSpan {
	n := q.Length()
	if n == 0 {
		return nil
	}
	out := make([]*model.RawSpan, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, q.Get(i).(*model.RawSpan))
	}
	return out
}
