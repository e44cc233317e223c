package minio

import (
	"context"
	"time"
)

// Constants for MinIO client configuration and behavior.
const (
	// DefaultPrefix is the key prefix reports are stored under.
	DefaultPrefix = "spans"

	// DefaultValidateTimeout bounds the connectivity check made at startup.
	DefaultValidateTimeout = 10 * time.Second

	// UploadDefaultContentType is the MIME type used when none is configured.
	UploadDefaultContentType = "application/octet-stream"
)

// Config defines the configuration for the object-store report sink.
type Config struct {
	// Connection contains basic connection parameters for the MinIO server
	Connection ConnectionConfig `yaml:"connection"`

	// Bucket receives one object per encoded report
	Bucket string `yaml:"bucket" envconfig:"MINIO_BUCKET"`

	// Prefix is prepended to every object key. Default: "spans"
	Prefix string `yaml:"prefix" envconfig:"MINIO_PREFIX"`

	// CreateBucket makes the client create the bucket on start when it is missing
	CreateBucket bool `yaml:"create_bucket" envconfig:"MINIO_CREATE_BUCKET"`
}

// ConnectionConfig contains MinIO server connection details.
type ConnectionConfig struct {
	// Endpoint is the MinIO server address (e.g., "minio.example.com:9000")
	Endpoint string `yaml:"endpoint" envconfig:"MINIO_ENDPOINT"`

	// AccessKeyID is the MinIO access key (similar to a username)
	AccessKeyID string `yaml:"access_key_id" envconfig:"MINIO_ACCESS_KEY_ID"`

	// SecretAccessKey is the MinIO secret key (similar to a password)
	SecretAccessKey string `yaml:"secret_access_key" envconfig:"MINIO_SECRET_ACCESS_KEY"` //nolint:gosec

	// UseSSL determines whether to use HTTPS (true) or HTTP (false)
	UseSSL bool `yaml:"use_ssl" envconfig:"MINIO_USE_SSL"`

	// Region specifies the S3 region (e.g., "us-east-1")
	Region string `yaml:"region" envconfig:"MINIO_REGION"`
}

// Logger defines the logging interface used by the MinIO client.
// It matches the logger.Logger contract.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
