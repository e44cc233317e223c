package spanbuffer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/lstrace/model"
)

func span(op string) *model.RawSpan {
	return &model.RawSpan{Operation: op}
}

func ops(spans []*model.RawSpan) []string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Operation)
	}
	return out
}

func TestNew_DefaultCapacity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultMaxSpanRecords, New(0).Cap())
	assert.Equal(t, 5, New(5).Cap())
}

func TestAppend_DropsNewestWhenFull(t *testing.T) {
	t.Parallel()
	b := New(2)

	assert.True(t, b.Append(span("A")))
	assert.True(t, b.Append(span("B")))
	assert.False(t, b.Append(span("C")))

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, int64(1), b.Counters().DroppedSpans)
	assert.Equal(t, []string{"A", "B"}, ops(b.DrainAll()))
}

func TestAppend_CountsDroppedLogs(t *testing.T) {
	t.Parallel()
	b := New(1)

	b.Append(&model.RawSpan{Operation: "A", DroppedLogs: 3})
	b.Append(&model.RawSpan{Operation: "B", DroppedLogs: 2})

	c := b.SnapshotAndResetCounters()
	assert.Equal(t, Counters{DroppedSpans: 1, DroppedLogs: 5}, c)
	assert.True(t, b.SnapshotAndResetCounters().IsZero())
}

func TestAppend_NilIgnored(t *testing.T) {
	t.Parallel()
	b := New(1)
	assert.False(t, b.Append(nil))
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Counters().IsZero())
}

func TestDrainAll_EmptiesBuffer(t *testing.T) {
	t.Parallel()
	b := New(10)
	b.Append(span("A"))

	assert.Equal(t, []string{"A"}, ops(b.DrainAll()))
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.DrainAll())
}

func TestDrainAll_ConcurrentAppendsAccountedOnce(t *testing.T) {
	t.Parallel()
	const writers, perWriter = 8, 500
	b := New(writers * perWriter)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < perWriter; i++ {
				b.Append(span("s"))
			}
		}()
	}

	close(start)
	drained := b.DrainAll()
	wg.Wait()
	rest := b.DrainAll()

	seen := make(map[*model.RawSpan]int)
	for _, s := range append(drained, rest...) {
		seen[s]++
	}
	assert.Len(t, seen, writers*perWriter)
	for _, n := range seen {
		require.Equal(t, 1, n)
	}
	assert.True(t, b.Counters().IsZero())
}

func TestRestore_PutsFailedSpansFirst(t *testing.T) {
	t.Parallel()
	b := New(10)
	b.Append(span("A"))
	b.Append(span("B"))
	failed := b.DrainAll()
	b.Append(span("C"))

	dropped := b.Restore(failed)

	assert.Equal(t, 0, dropped)
	assert.Equal(t, []string{"A", "B", "C"}, ops(b.DrainAll()))
}

func TestRestore_RespectsCapacity(t *testing.T) {
	t.Parallel()
	b := New(3)
	b.Append(span("A"))
	b.Append(span("B"))
	failed := b.DrainAll()
	b.Append(span("C"))
	b.Append(span("D"))

	dropped := b.Restore(failed)

	assert.Equal(t, 1, dropped)
	assert.Equal(t, []string{"A", "B", "C"}, ops(b.DrainAll()))
	assert.Equal(t, int64(1), b.Counters().DroppedSpans)
}

func TestAddCounters_Merges(t *testing.T) {
	t.Parallel()
	b := New(1)
	b.Append(span("A"))
	b.Append(span("B"))
	snap := b.SnapshotAndResetCounters()

	b.Append(span("C"))
	b.AddCounters(snap)

	assert.Equal(t, int64(2), b.Counters().DroppedSpans)
}

func TestClose_DiscardsAndRejects(t *testing.T) {
	t.Parallel()
	b := New(5)
	b.Append(span("A"))
	b.Append(span("B"))

	assert.Equal(t, 2, b.Close())
	assert.True(t, b.Closed())
	assert.False(t, b.Append(span("C")))
	assert.Equal(t, 0, b.Restore([]*model.RawSpan{span("D")}))
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Close())
}
