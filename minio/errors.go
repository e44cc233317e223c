package minio

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Common object storage error types returned (wrapped) by the client. They abstract away
// the underlying MinIO-specific error details.
var (
	// ErrBucketNotFound is returned when a bucket doesn't exist
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrBucketAlreadyExists is returned when trying to create a bucket that already exists
	ErrBucketAlreadyExists = errors.New("bucket already exists")

	// ErrInvalidBucketName is returned when bucket name is invalid
	ErrInvalidBucketName = errors.New("invalid bucket name")

	// ErrAccessDenied is returned when access is denied to bucket or object
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidCredentials is returned when credentials are invalid
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCredentialsExpired is returned when credentials have expired
	ErrCredentialsExpired = errors.New("credentials expired")

	// ErrConnectionFailed is returned when connection to MinIO server fails
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConnectionLost is returned when connection to MinIO server is lost
	ErrConnectionLost = errors.New("connection lost")

	// ErrTimeout is returned when operation times out
	ErrTimeout = errors.New("operation timeout")

	// ErrObjectTooLarge is returned when object exceeds size limits
	ErrObjectTooLarge = errors.New("object too large")

	// ErrServerError is returned for internal MinIO server errors
	ErrServerError = errors.New("server error")

	// ErrServiceUnavailable is returned when MinIO service is unavailable
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrTooManyRequests is returned when rate limit is exceeded
	ErrTooManyRequests = errors.New("too many requests")

	// ErrNetworkError is returned for network-related errors
	ErrNetworkError = errors.New("network error")

	// ErrQuotaExceeded is returned when storage quota is exceeded
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrCancelled is returned when operation is cancelled
	ErrCancelled = errors.New("operation cancelled")

	// ErrConfigurationError is returned for configuration-related errors
	ErrConfigurationError = errors.New("configuration error")

	// ErrClientClosed is returned by SendBatch after Close
	ErrClientClosed = errors.New("minio client closed")
)

// TranslateError converts MinIO-specific errors into the sentinel errors above.
// If an error doesn't match any known type, it's returned unchanged.
func (m *MinioClient) TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return ErrCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	}

	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		return translateMinIOError(minioErr, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return translateURLError(urlErr)
	}

	return translateByErrorMessage(strings.ToLower(err.Error()), err)
}

// translateMinIOError maps MinIO error responses to custom errors, falling back to the
// HTTP status when the code is not recognized.
func translateMinIOError(minioErr minio.ErrorResponse, originalErr error) error {
	switch minioErr.Code {
	case "NoSuchBucket":
		return ErrBucketNotFound
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return ErrBucketAlreadyExists
	case "InvalidBucketName":
		return ErrInvalidBucketName
	case "AccessDenied":
		return ErrAccessDenied
	case "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return ErrInvalidCredentials
	case "TokenRefreshRequired", "ExpiredToken":
		return ErrCredentialsExpired
	case "EntityTooLarge":
		return ErrObjectTooLarge
	case "InternalError":
		return ErrServerError
	case "ServiceUnavailable":
		return ErrServiceUnavailable
	case "SlowDown", "SlowDownWrite":
		return ErrTooManyRequests
	case "RequestTimeout":
		return ErrTimeout
	case "QuotaExceeded", "XMinioStorageFull":
		return ErrQuotaExceeded
	}

	switch {
	case minioErr.StatusCode == http.StatusTooManyRequests:
		return ErrTooManyRequests
	case minioErr.StatusCode == http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	case minioErr.StatusCode >= http.StatusInternalServerError:
		return ErrServerError
	case minioErr.StatusCode == http.StatusForbidden:
		return ErrAccessDenied
	}
	return originalErr
}

// translateURLError maps URL errors to custom errors
func translateURLError(urlErr *url.Error) error {
	switch {
	case urlErr.Timeout():
		return ErrTimeout
	case strings.Contains(urlErr.Error(), "connection refused"):
		return ErrConnectionFailed
	case strings.Contains(urlErr.Error(), "connection reset"):
		return ErrConnectionLost
	default:
		return ErrNetworkError
	}
}

// translateByErrorMessage translates errors based on error message patterns (fallback)
func translateByErrorMessage(errMsg string, originalErr error) error {
	switch {
	case strings.Contains(errMsg, "connection refused"),
		strings.Contains(errMsg, "connection failed"):
		return ErrConnectionFailed
	case strings.Contains(errMsg, "connection reset"):
		return ErrConnectionLost
	case strings.Contains(errMsg, "network is unreachable"),
		strings.Contains(errMsg, "no route to host"),
		strings.Contains(errMsg, "host is down"):
		return ErrNetworkError

	case strings.Contains(errMsg, "timeout"),
		strings.Contains(errMsg, "deadline exceeded"):
		return ErrTimeout

	case strings.Contains(errMsg, "bucket does not exist"),
		strings.Contains(errMsg, "no such bucket"):
		return ErrBucketNotFound

	case strings.Contains(errMsg, "access denied"),
		strings.Contains(errMsg, "forbidden"):
		return ErrAccessDenied
	case strings.Contains(errMsg, "unauthorized"),
		strings.Contains(errMsg, "invalid access key"):
		return ErrInvalidCredentials

	case strings.Contains(errMsg, "entity too large"):
		return ErrObjectTooLarge

	case strings.Contains(errMsg, "internal server error"),
		strings.Contains(errMsg, "bad gateway"):
		return ErrServerError
	case strings.Contains(errMsg, "service unavailable"):
		return ErrServiceUnavailable

	case strings.Contains(errMsg, "too many requests"),
		strings.Contains(errMsg, "slow down"):
		return ErrTooManyRequests

	case strings.Contains(errMsg, "quota exceeded"),
		strings.Contains(errMsg, "insufficient storage"):
		return ErrQuotaExceeded

	case strings.Contains(errMsg, "canceled"),
		strings.Contains(errMsg, "cancelled"):
		return ErrCancelled

	default:
		return originalErr
	}
}

// IsRetryableError returns true if the error is retryable
func (m *MinioClient) IsRetryableError(err error) bool {
	switch {
	case errors.Is(err, ErrConnectionFailed),
		errors.Is(err, ErrConnectionLost),
		errors.Is(err, ErrTimeout),
		errors.Is(err, ErrNetworkError),
		errors.Is(err, ErrServerError),
		errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, ErrTooManyRequests),
		errors.Is(err, ErrCredentialsExpired):
		return true
	default:
		return false
	}
}

// IsPermanentError returns true if the error is permanent and should not be retried
func (m *MinioClient) IsPermanentError(err error) bool {
	switch {
	case errors.Is(err, ErrBucketNotFound),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidBucketName),
		errors.Is(err, ErrObjectTooLarge),
		errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrConfigurationError),
		errors.Is(err, ErrClientClosed),
		errors.Is(err, ErrCancelled):
		return true
	default:
		return false
	}
}
