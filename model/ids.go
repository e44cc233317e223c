package model

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"math/rand/v2"
	"sync"
)

// TraceID identifies a trace. It is fixed at the trace root and shared by every span in it.
type TraceID [16]byte

// SpanID identifies a single span within a trace.
type SpanID [8]byte

// IsValid reports whether the id is non-zero.
func (t TraceID) IsValid() bool {
	return t != TraceID{}
}

// String returns the 32 digit lowercase hex form.
func (t TraceID) String() string {
	return hex.EncodeToString(t[:])
}

// High returns the leading 64 bits.
func (t TraceID) High() uint64 {
	return binary.BigEndian.Uint64(t[:8])
}

// Low returns the trailing 64 bits.
func (t TraceID) Low() uint64 {
	return binary.BigEndian.Uint64(t[8:])
}

// TraceIDFromUint64s assembles a TraceID from its high and low halves.
func TraceIDFromUint64s(high, low uint64) TraceID {
	var t TraceID
	binary.BigEndian.PutUint64(t[:8], high)
	binary.BigEndian.PutUint64(t[8:], low)
	return t
}

// IsValid reports whether the id is non-zero.
func (s SpanID) IsValid() bool {
	return s != SpanID{}
}

// String returns the 16 digit lowercase hex form.
func (s SpanID) String() string {
	return hex.EncodeToString(s[:])
}

// Uint64 returns the id as a big-endian integer.
func (s SpanID) Uint64() uint64 {
	return binary.BigEndian.Uint64(s[:])
}

// SpanIDFromUint64 builds a SpanID from a big-endian integer.
func SpanIDFromUint64(v uint64) SpanID {
	var s SpanID
	binary.BigEndian.PutUint64(s[:], v)
	return s
}

// IDGenerator mints random trace and span ids. It is safe for concurrent use.
type IDGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewIDGenerator returns a generator seeded from crypto/rand.
func NewIDGenerator() *IDGenerator {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand does not fail on supported platforms; fall back to the runtime source.
		binary.LittleEndian.PutUint64(seed[:8], rand.Uint64())
		binary.LittleEndian.PutUint64(seed[8:16], rand.Uint64())
	}
	return &IDGenerator{rng: rand.New(rand.NewChaCha8(seed))}
}

// NewTraceID returns a fresh, valid 128-bit trace id.
func (g *IDGenerator) NewTraceID() TraceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		t := TraceIDFromUint64s(g.rng.Uint64(), g.rng.Uint64())
		if t.IsValid() {
			return t
		}
	}
}

// NewSpanID returns a fresh, valid 64-bit span id.
func (g *IDGenerator) NewSpanID() SpanID {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		if v := g.rng.Uint64(); v != 0 {
			return SpanIDFromUint64(v)
		}
	}
}
