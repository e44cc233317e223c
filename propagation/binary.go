package propagation

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/aalemi-dev/lstrace/model"
)

// Binary wire contract, version 1 (all integers big-endian):
//
//	offset  size  field
//	0       1     version (1)
//	1       16    trace id
//	17      8     span id
//	25      4     baggage item count n
//	29      ...   n × { key length u32 | key | value length u32 | value }
//
// Baggage items are written in key order so equal contexts encode to equal bytes.
const (
	BinaryVersion = 1

	binaryHeaderSize = 1 + 16 + 8 + 4

	// maxBinaryCarrierSize bounds what Extract will read from an io.Reader carrier.
	maxBinaryCarrierSize = 1 << 20
)

func encodeBinary(sc model.SpanContext) []byte {
	size := binaryHeaderSize
	keys := make([]string, 0, len(sc.Baggage))
	for k, v := range sc.Baggage {
		keys = append(keys, k)
		size += 8 + len(k) + len(v)
	}
	sort.Strings(keys)

	buf := make([]byte, 0, size)
	buf = append(buf, BinaryVersion)
	buf = append(buf, sc.TraceID[:]...)
	buf = append(buf, sc.SpanID[:]...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(keys)))
	for _, k := range keys {
		v := sc.Baggage[k]
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(k)))
		buf = append(buf, k...)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(v)))
		buf = append(buf, v...)
	}
	return buf
}

func decodeBinary(data []byte) (model.SpanContext, bool, error) {
	if len(data) == 0 {
		return model.SpanContext{}, false, nil
	}
	if data[0] != BinaryVersion {
		return model.SpanContext{}, false, fmt.Errorf("%w: unknown binary version %d", ErrSpanContextCorrupted, data[0])
	}
	if len(data) < binaryHeaderSize {
		return model.SpanContext{}, false, fmt.Errorf("%w: binary carrier truncated at %d bytes", ErrSpanContextCorrupted, len(data))
	}

	var sc model.SpanContext
	copy(sc.TraceID[:], data[1:17])
	copy(sc.SpanID[:], data[17:25])
	if !sc.IsValid() {
		return model.SpanContext{}, false, fmt.Errorf("%w: zero trace or span id", ErrSpanContextCorrupted)
	}

	count := binary.BigEndian.Uint32(data[25:29])
	rest := data[binaryHeaderSize:]
	// Each item needs at least two length prefixes; reject counts the payload cannot hold.
	if uint64(count)*8 > uint64(len(rest)) {
		return model.SpanContext{}, false, fmt.Errorf("%w: baggage count %d exceeds payload", ErrSpanContextCorrupted, count)
	}

	if count > 0 {
		sc.Baggage = make(map[string]string, count)
	}
	for i := uint32(0); i < count; i++ {
		var key, val string
		var err error
		if key, rest, err = readLengthPrefixed(rest); err != nil {
			return model.SpanContext{}, false, fmt.Errorf("%w: baggage key %d: %v", ErrSpanContextCorrupted, i, err)
		}
		if val, rest, err = readLengthPrefixed(rest); err != nil {
			return model.SpanContext{}, false, fmt.Errorf("%w: baggage value %d: %v", ErrSpanContextCorrupted, i, err)
		}
		sc.Baggage[key] = val
	}
	if len(rest) != 0 {
		return model.SpanContext{}, false, fmt.Errorf("%w: %d trailing bytes", ErrSpanContextCorrupted, len(rest))
	}
	return sc, true, nil
}

func readLengthPrefixed(b []byte) (string, []byte, error) {
	if len(b) < 4 {
		return "", nil, io.ErrUnexpectedEOF
	}
	n := binary.BigEndian.Uint32(b)
	b = b[4:]
	if uint64(n) > uint64(len(b)) {
		return "", nil, io.ErrUnexpectedEOF
	}
	return string(b[:n]), b[n:], nil
}

func injectBinary(sc model.SpanContext, carrier interface{}) error {
	encoded := encodeBinary(sc)
	switch c := carrier.(type) {
	case *[]byte:
		if c == nil {
			return ErrInvalidCarrier
		}
		*c = encoded
		return nil
	case io.Writer:
		if _, err := c.Write(encoded); err != nil {
			return fmt.Errorf("propagation: write binary carrier: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: binary format needs *[]byte or io.Writer, got %T", ErrInvalidCarrier, carrier)
	}
}

func extractBinary(carrier interface{}) (model.SpanContext, bool, error) {
	switch c := carrier.(type) {
	case []byte:
		return decodeBinary(c)
	case *[]byte:
		if c == nil {
			return model.SpanContext{}, false, ErrInvalidCarrier
		}
		return decodeBinary(*c)
	case io.Reader:
		var buf bytes.Buffer
		n, err := buf.ReadFrom(io.LimitReader(c, maxBinaryCarrierSize+1))
		if err != nil {
			return model.SpanContext{}, false, fmt.Errorf("propagation: read binary carrier: %w", err)
		}
		if n > maxBinaryCarrierSize {
			return model.SpanContext{}, false, fmt.Errorf("%w: binary carrier larger than %d bytes", ErrSpanContextCorrupted, maxBinaryCarrierSize)
		}
		return decodeBinary(buf.Bytes())
	default:
		return model.SpanContext{}, false, fmt.Errorf("%w: binary format needs []byte or io.Reader, got %T", ErrInvalidCarrier, carrier)
	}
}
