package minio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aalemi-dev/lstrace/observability"
)

// MinioClient uploads encoded span reports to an S3-compatible object store.
type MinioClient struct {
	// store is the MinIO client used for uploads and bucket management
	store objectStore

	// cfg holds the configuration for this MinIO client instance
	cfg Config

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// logger provides optional context-aware logging capabilities
	logger Logger

	// reporterID names the producing tracer in object keys and metadata
	reporterID string

	// contentType and contentEncoding describe the payload bytes
	contentType     string
	contentEncoding string

	// seq numbers the objects written by this client
	seq atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a MinioClient for the configured bucket. It does not contact the
// server; call Ping or EnsureBucket to verify connectivity.
//
// Example:
//
//	client, err := minio.NewClient(minio.Config{
//		Connection: minio.ConnectionConfig{
//			Endpoint:        "localhost:9000",
//			AccessKeyID:     "minioadmin",
//			SecretAccessKey: "minioadmin",
//		},
//		Bucket: "traces",
//	})
func NewClient(cfg Config) (*MinioClient, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket name cannot be empty", ErrConfigurationError)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}

	store, err := connectToMinio(cfg)
	if err != nil {
		return nil, err
	}

	return newClientWithStore(cfg, store), nil
}

func newClientWithStore(cfg Config, store objectStore) *MinioClient {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	return &MinioClient{
		store:       store,
		cfg:         cfg,
		contentType: UploadDefaultContentType,
	}
}

// connectToMinio creates a new standard MinIO client.
func connectToMinio(cfg Config) (*minio.Client, error) {
	if cfg.Connection.Endpoint == "" {
		return nil, fmt.Errorf("%w: minio endpoint cannot be empty", ErrConfigurationError)
	}

	client, err := minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Ping lists buckets to ensure the connection and credentials are valid.
func (m *MinioClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultValidateTimeout)
	defer cancel()

	if _, err := m.store.ListBuckets(ctx); err != nil {
		return m.wrapError(err)
	}
	return nil
}

// EnsureBucket creates the configured bucket if it doesn't already exist.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.store.BucketExists(ctx, m.cfg.Bucket)
	if err != nil {
		return m.wrapError(err)
	}
	if exists {
		return nil
	}

	err = m.store.MakeBucket(ctx, m.cfg.Bucket, minio.MakeBucketOptions{Region: m.cfg.Connection.Region})
	if err != nil {
		translated := m.TranslateError(err)
		if translated == ErrBucketAlreadyExists {
			return nil
		}
		return m.wrapError(err)
	}

	m.logInfo(ctx, "created report bucket", map[string]interface{}{"bucket": m.cfg.Bucket})
	return nil
}

// WithObserver attaches an observer to the MinIO client for tracking operations.
func (m *MinioClient) WithObserver(observer observability.Observer) *MinioClient {
	m.observer = observer
	return m
}

// WithLogger attaches a logger to the MinIO client.
func (m *MinioClient) WithLogger(logger Logger) *MinioClient {
	m.logger = logger
	return m
}

// WithReporterID sets the reporter identity embedded in object keys and metadata.
func (m *MinioClient) WithReporterID(id string) *MinioClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reporterID = id
	return m
}

// WithContentType sets the Content-Type and Content-Encoding stored with every object.
func (m *MinioClient) WithContentType(contentType, contentEncoding string) *MinioClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	if contentType != "" {
		m.contentType = contentType
	}
	m.contentEncoding = contentEncoding
	return m
}

func (m *MinioClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}
