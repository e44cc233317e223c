package payload

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/aalemi-dev/lstrace/model"
)

// envelopeOverhead covers the reporter record, timestamp and internal metrics.
const envelopeOverhead = 512

// JSONEncoder renders reports as JSON with optional gzip or zstd compression.
// It is safe for concurrent use.
type JSONEncoder struct {
	compression string
	zenc        *zstd.Encoder
	zdec        *zstd.Decoder
}

// NewJSONEncoder builds an encoder for the configured compression.
func NewJSONEncoder(cfg Config) (*JSONEncoder, error) {
	e := &JSONEncoder{compression: cfg.Compression}
	switch cfg.Compression {
	case "", CompressionNone:
		e.compression = CompressionNone
	case CompressionGzip:
	case CompressionZstd:
		zenc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("payload: create zstd encoder: %w", err)
		}
		zdec, err := zstd.NewReader(nil)
		if err != nil {
			_ = zenc.Close()
			return nil, fmt.Errorf("payload: create zstd decoder: %w", err)
		}
		e.zenc, e.zdec = zenc, zdec
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, cfg.Compression)
	}
	return e, nil
}

// Encode implements Encoder.
func (e *JSONEncoder) Encode(report *Report) ([]byte, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	raw, err := sonic.Marshal(newEnvelope(report))
	if err != nil {
		return nil, fmt.Errorf("payload: marshal report: %w", err)
	}
	return e.compress(raw)
}

// EstimateSize implements Encoder by marshaling each span on its own. Spans that cannot be
// marshaled are estimated from their field lengths.
func (e *JSONEncoder) EstimateSize(spans []*model.RawSpan) int {
	size := envelopeOverhead
	for _, s := range spans {
		if s == nil {
			continue
		}
		b, err := sonic.Marshal(newSpanRecord(s))
		if err != nil {
			size += roughSpanSize(s)
			continue
		}
		size += len(b) + 1
	}
	return size
}

// ContentType implements Encoder.
func (e *JSONEncoder) ContentType() string {
	return ContentTypeJSON
}

// ContentEncoding implements Encoder.
func (e *JSONEncoder) ContentEncoding() string {
	if e.compression == CompressionNone {
		return ""
	}
	return e.compression
}

// Decode decompresses and parses a payload produced by Encode.
func (e *JSONEncoder) Decode(data []byte) (*Envelope, error) {
	raw, err := e.decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var env Envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &env, nil
}

func (e *JSONEncoder) compress(raw []byte) ([]byte, error) {
	switch e.compression {
	case CompressionGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, fmt.Errorf("payload: gzip: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("payload: gzip: %w", err)
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		return e.zenc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
	default:
		return raw, nil
	}
}

func (e *JSONEncoder) decompress(data []byte) ([]byte, error) {
	switch e.compression {
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressionZstd:
		return e.zdec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}

func roughSpanSize(s *model.RawSpan) int {
	n := 256 + len(s.Operation)
	for k, v := range s.Tags {
		n += len(k) + len(fmt.Sprint(v)) + 24
	}
	for _, l := range s.Logs {
		n += 48
		for k, v := range l.Fields {
			n += len(k) + len(fmt.Sprint(v)) + 24
		}
	}
	return n
}
