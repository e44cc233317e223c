package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/lstrace/kafka"
	"github.com/aalemi-dev/lstrace/minio"
)

type fakeSender struct {
	err       error
	retryable bool
	sent      [][]byte
	closed    bool
}

func (f *fakeSender) SendBatch(_ context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeSender) Close() error {
	f.closed = true
	return nil
}

func (f *fakeSender) IsRetryableError(error) bool {
	return f.retryable
}

func TestNew_SelectsKind(t *testing.T) {
	t.Parallel()

	tr, err := New(Config{Kind: KindHTTP, HTTP: HTTPConfig{URL: "http://127.0.0.1:1"}}, Options{})
	require.NoError(t, err)
	assert.IsType(t, &HTTPTransport{}, tr)

	tr, err = New(Config{GRPC: GRPCConfig{Endpoint: "127.0.0.1:1", Plaintext: true}}, Options{})
	require.NoError(t, err)
	assert.IsType(t, &GRPCTransport{}, tr)
	require.NoError(t, tr.Close())

	tr, err = New(Config{Kind: KindKafka, Kafka: kafka.Config{Brokers: []string{"127.0.0.1:1"}, Topic: "spans"}}, Options{AccessToken: "t"})
	require.NoError(t, err)
	assert.IsType(t, &KafkaTransport{}, tr)
	require.NoError(t, tr.Close())

	tr, err = New(Config{Kind: KindMinio, Minio: minio.Config{Bucket: "traces", Connection: minio.ConnectionConfig{Endpoint: "127.0.0.1:1"}}}, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MinioTransport{}, tr)

	_, err = New(Config{Kind: "carrier-pigeon"}, Options{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNew_PropagatesConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Kind: KindKafka}, Options{})
	assert.ErrorIs(t, err, kafka.ErrInvalidConfig)

	_, err = New(Config{Kind: KindMinio}, Options{})
	assert.ErrorIs(t, err, minio.ErrConfigurationError)

	_, err = New(Config{Kind: KindHTTP}, Options{})
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestKafkaTransport_ClassifiesErrors(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: kafka.ErrBrokerNotAvailable, retryable: true}
	var described ReportMeta
	tr := &KafkaTransport{client: sender, describe: func(m ReportMeta) { described = m }}

	err := tr.SendBatch(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, kafka.ErrBrokerNotAvailable)

	var te *Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, KindKafka, te.Op)

	tr.DescribeReports(ReportMeta{ReporterGUID: "g"})
	assert.Equal(t, "g", described.ReporterGUID)

	sender.err = nil
	require.NoError(t, tr.SendBatch(context.Background(), []byte("y")))
	assert.Len(t, sender.sent, 1)

	require.NoError(t, tr.Close())
	assert.True(t, sender.closed)
}

func TestMinioTransport_ClassifiesErrors(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: minio.ErrAccessDenied}
	tr := &MinioTransport{client: sender}

	err := tr.SendBatch(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.False(t, IsRetryable(err))
	assert.ErrorIs(t, err, minio.ErrAccessDenied)

	assert.NotPanics(t, func() { tr.DescribeReports(ReportMeta{}) })
}

func TestError(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := newError(KindGRPC, true, inner)
	assert.Equal(t, "transport grpc: boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.True(t, IsRetryable(err))
	assert.False(t, IsRetryable(inner))
	assert.False(t, IsRetryable(nil))
}
