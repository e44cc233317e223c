package minio

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// Client stores encoded span reports as objects.
//
// This interface is implemented by the concrete *MinioClient type.
type Client interface {
	// SendBatch uploads one encoded report as a new object.
	SendBatch(ctx context.Context, payload []byte) error

	// EnsureBucket creates the configured bucket if it does not exist.
	EnsureBucket(ctx context.Context) error

	// Close releases the client. Uploads after Close fail.
	Close() error

	// TranslateError translates MinIO errors to the package's sentinel errors.
	TranslateError(err error) error

	// IsRetryableError checks if an error can be retried.
	IsRetryableError(err error) bool

	// IsPermanentError checks if an error is permanent.
	IsPermanentError(err error) bool
}

// objectStore is the subset of *minio.Client the sink uses.
type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
}
