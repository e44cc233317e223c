package spanbuffer

import (
	"sync"

	"github.com/eapache/queue"
)

// Buffer is a bounded, thread-safe FIFO of finished spans awaiting report.
//
// Appends never block on anything but a short critical section and never fail: when the
// buffer is full the new span is dropped and counted (drop-newest), leaving already
// buffered spans untouched. The reporter is the only consumer; it takes everything with
// DrainAll and gives back what it could not send with Restore.
type Buffer struct {
	mu       sync.Mutex
	spans    *queue.Queue
	max      int
	counters Counters
	closed   bool
}

// New creates a buffer holding at most maxSpanRecords spans.
// A non-positive capacity selects DefaultMaxSpanRecords.
func New(maxSpanRecords int) *Buffer {
	if maxSpanRecords <= 0 {
		maxSpanRecords = DefaultMaxSpanRecords
	}
	return &Buffer{
		spans: queue.New(),
		max:   maxSpanRecords,
	}
}
