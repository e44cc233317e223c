package transport

import (
	"context"
	"fmt"

	"github.com/aalemi-dev/lstrace/kafka"
	"github.com/aalemi-dev/lstrace/minio"
)

// New builds the transport selected by cfg.Kind.
func New(cfg Config, opts Options) (Transport, error) {
	switch cfg.Kind {
	case "", KindGRPC:
		return NewGRPCTransport(cfg.GRPC, opts)
	case KindHTTP:
		return NewHTTPTransport(cfg.HTTP, opts)
	case KindKafka:
		return NewKafkaTransport(cfg.Kafka, opts)
	case KindMinio:
		return NewMinioTransport(cfg.Minio, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

// kafkaSender is the part of kafka.Client the adapter needs.
type kafkaSender interface {
	SendBatch(ctx context.Context, payload []byte) error
	Close() error
	IsRetryableError(err error) bool
}

// KafkaTransport publishes reports through a kafka.KafkaClient.
type KafkaTransport struct {
	client   kafkaSender
	describe func(ReportMeta)
}

// NewKafkaTransport creates the Kafka producer and wraps it as a Transport.
func NewKafkaTransport(cfg kafka.Config, opts Options) (*KafkaTransport, error) {
	client, err := kafka.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		client.WithLogger(opts.Logger)
	}
	if opts.Observer != nil {
		client.WithObserver(opts.Observer)
	}
	client.WithHeaders(map[string]string{kafka.HeaderAccessToken: opts.AccessToken})

	describe := func(meta ReportMeta) {
		client.WithKey(meta.ReporterGUID).WithHeaders(map[string]string{
			kafka.HeaderAccessToken:     opts.AccessToken,
			kafka.HeaderContentType:     meta.ContentType,
			kafka.HeaderContentEncoding: meta.ContentEncoding,
		})
	}
	return &KafkaTransport{client: client, describe: describe}, nil
}

// DescribeReports implements ReportDescriber.
func (k *KafkaTransport) DescribeReports(meta ReportMeta) {
	if k.describe != nil {
		k.describe(meta)
	}
}

// SendBatch implements Transport.
func (k *KafkaTransport) SendBatch(ctx context.Context, payload []byte) error {
	if err := k.client.SendBatch(ctx, payload); err != nil {
		return newError(KindKafka, k.client.IsRetryableError(err), err)
	}
	return nil
}

// Close implements Transport.
func (k *KafkaTransport) Close() error {
	return k.client.Close()
}

// minioSender is the part of minio.Client the adapter needs.
type minioSender interface {
	SendBatch(ctx context.Context, payload []byte) error
	Close() error
	IsRetryableError(err error) bool
}

// MinioTransport stores reports through a minio.MinioClient.
type MinioTransport struct {
	client   minioSender
	describe func(ReportMeta)
}

// NewMinioTransport creates the object-store client and wraps it as a Transport.
// The access token is not used: the store authenticates with its own credentials.
func NewMinioTransport(cfg minio.Config, opts Options) (*MinioTransport, error) {
	client, err := minio.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		client.WithLogger(opts.Logger)
	}
	if opts.Observer != nil {
		client.WithObserver(opts.Observer)
	}
	describe := func(meta ReportMeta) {
		client.WithReporterID(meta.ReporterGUID).WithContentType(meta.ContentType, meta.ContentEncoding)
	}
	return &MinioTransport{client: client, describe: describe}, nil
}

// DescribeReports implements ReportDescriber.
func (m *MinioTransport) DescribeReports(meta ReportMeta) {
	if m.describe != nil {
		m.describe(meta)
	}
}

// SendBatch implements Transport.
func (m *MinioTransport) SendBatch(ctx context.Context, payload []byte) error {
	if err := m.client.SendBatch(ctx, payload); err != nil {
		return newError(KindMinio, m.client.IsRetryableError(err), err)
	}
	return nil
}

// Close implements Transport.
func (m *MinioTransport) Close() error {
	return m.client.Close()
}
