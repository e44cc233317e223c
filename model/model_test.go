package model

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID_Halves(t *testing.T) {
	t.Parallel()
	id := TraceIDFromUint64s(0x0102030405060708, 0x090a0b0c0d0e0f10)

	assert.Equal(t, uint64(0x0102030405060708), id.High())
	assert.Equal(t, uint64(0x090a0b0c0d0e0f10), id.Low())
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", id.String())
	assert.True(t, id.IsValid())
	assert.False(t, TraceID{}.IsValid())
}

func TestSpanID_Uint64RoundTrip(t *testing.T) {
	t.Parallel()
	id := SpanIDFromUint64(0xdeadbeef)

	assert.Equal(t, uint64(0xdeadbeef), id.Uint64())
	assert.Equal(t, "00000000deadbeef", id.String())
	assert.False(t, SpanID{}.IsValid())
}

func TestIDGenerator_UniqueAndValid(t *testing.T) {
	t.Parallel()
	g := NewIDGenerator()

	var mu sync.Mutex
	seen := make(map[SpanID]struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				id := g.NewSpanID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 4000)
	assert.True(t, g.NewTraceID().IsValid())
}

func TestSpanContext_WithBaggageItemCopies(t *testing.T) {
	t.Parallel()
	g := NewIDGenerator()
	parent := NewSpanContext(g.NewTraceID(), g.NewSpanID(), map[string]string{"user": "42"})

	child := parent.WithBaggageItem("tenant", "acme")

	assert.Equal(t, "", parent.BaggageItem("tenant"))
	assert.Equal(t, "acme", child.BaggageItem("tenant"))
	assert.Equal(t, "42", child.BaggageItem("user"))
	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.SpanID)
}

func TestSpanContext_ChildContextIsolatesBaggage(t *testing.T) {
	t.Parallel()
	g := NewIDGenerator()
	parent := NewSpanContext(g.NewTraceID(), g.NewSpanID(), map[string]string{"k": "v"})

	child := parent.ChildContext(g.NewSpanID())
	child.Baggage["k"] = "changed"

	assert.Equal(t, "v", parent.BaggageItem("k"))
	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.NotEqual(t, parent.SpanID, child.SpanID)
}

func TestSpanContext_ForeachStopsEarly(t *testing.T) {
	t.Parallel()
	sc := NewSpanContext(TraceID{1}, SpanID{1}, map[string]string{"a": "1", "b": "2", "c": "3"})

	calls := 0
	sc.ForeachBaggageItem(func(k, v string) bool {
		calls++
		return false
	})

	assert.Equal(t, 1, calls)
	assert.True(t, sc.IsValid())
}

func TestRawSpan_Duration(t *testing.T) {
	t.Parallel()
	start := time.Unix(100, 0)
	s := &RawSpan{Start: start, Finish: start.Add(1500 * time.Millisecond)}

	assert.Equal(t, 1500*time.Millisecond, s.Duration())
}

func TestReferenceType_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "child_of", ChildOf.String())
	assert.Equal(t, "follows_from", FollowsFrom.String())
	assert.Equal(t, "reference(7)", ReferenceType(7).String())
}

func TestNormalizeTagValue(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{"string", "x", "x"},
		{"int", 3, int64(3)},
		{"int32", int32(-4), int64(-4)},
		{"uint16", uint16(9), uint64(9)},
		{"float32", float32(0.5), float64(0.5)},
		{"bool", true, true},
		{"nan", math.NaN(), "NaN"},
		{"+inf", math.Inf(1), "+Inf"},
		{"-inf float32", float32(math.Inf(-1)), "-Inf"},
		{"finite float64", 2.25, 2.25},
		{"error", errors.New("boom"), "boom"},
		{"nil", nil, ""},
		{"slice", []int{1, 2}, "[1 2]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeTagValue(tc.in))
		})
	}
}
