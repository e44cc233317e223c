package kafka

import (
	"context"
	"errors"
	"strings"

	"github.com/segmentio/kafka-go"
)

// Common Kafka error types returned (wrapped) by SendBatch. They abstract away the
// underlying Kafka-specific error details.
var (
	// ErrConnectionFailed is returned when connection to Kafka cannot be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConnectionLost is returned when connection to Kafka is lost
	ErrConnectionLost = errors.New("connection lost")

	// ErrBrokerNotAvailable is returned when broker is not available
	ErrBrokerNotAvailable = errors.New("broker not available")

	// ErrAuthenticationFailed is returned when authentication fails
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAuthorizationFailed is returned when authorization fails
	ErrAuthorizationFailed = errors.New("authorization failed")

	// ErrTopicNotFound is returned when topic doesn't exist
	ErrTopicNotFound = errors.New("topic not found")

	// ErrMessageTooLarge is returned when message exceeds size limits
	ErrMessageTooLarge = errors.New("message too large")

	// ErrLeaderNotAvailable is returned when leader is not available
	ErrLeaderNotAvailable = errors.New("leader not available")

	// ErrNotLeaderForPartition is returned when broker is not the leader for partition
	ErrNotLeaderForPartition = errors.New("not leader for partition")

	// ErrRequestTimedOut is returned when request times out
	ErrRequestTimedOut = errors.New("request timed out")

	// ErrNetworkError is returned for network-related errors
	ErrNetworkError = errors.New("network error")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnsupportedVersion is returned when version is not supported
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrWriterNotInitialized is returned when writer is not initialized
	ErrWriterNotInitialized = errors.New("writer not initialized")

	// ErrContextCanceled is returned when context is canceled
	ErrContextCanceled = errors.New("context canceled")

	// ErrContextDeadlineExceeded is returned when context deadline is exceeded
	ErrContextDeadlineExceeded = errors.New("context deadline exceeded")
)

// TranslateError converts Kafka-specific errors into the sentinel errors above.
// Protocol errors are mapped by code; anything else is matched on its message.
// If an error doesn't match any known type, it's returned unchanged.
func (k *KafkaClient) TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return ErrContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrContextDeadlineExceeded
	}

	var kerr kafka.Error
	if errors.As(err, &kerr) {
		if translated := translateProtocolError(kerr); translated != nil {
			return translated
		}
	}

	return translateByErrorMessage(strings.ToLower(err.Error()), err)
}

func translateProtocolError(kerr kafka.Error) error {
	switch kerr {
	case kafka.MessageSizeTooLarge:
		return ErrMessageTooLarge
	case kafka.LeaderNotAvailable:
		return ErrLeaderNotAvailable
	case kafka.NotLeaderForPartition:
		return ErrNotLeaderForPartition
	case kafka.RequestTimedOut:
		return ErrRequestTimedOut
	case kafka.UnknownTopicOrPartition:
		return ErrTopicNotFound
	case kafka.BrokerNotAvailable:
		return ErrBrokerNotAvailable
	case kafka.TopicAuthorizationFailed, kafka.ClusterAuthorizationFailed:
		return ErrAuthorizationFailed
	case kafka.SASLAuthenticationFailed:
		return ErrAuthenticationFailed
	case kafka.UnsupportedVersion:
		return ErrUnsupportedVersion
	}
	return nil
}

// translateByErrorMessage translates errors based on error message patterns
func translateByErrorMessage(errMsg string, originalErr error) error {
	switch {
	case strings.Contains(errMsg, "connection refused"):
		return ErrConnectionFailed
	case strings.Contains(errMsg, "connection reset"),
		strings.Contains(errMsg, "connection closed"):
		return ErrConnectionLost
	case strings.Contains(errMsg, "broker not available"):
		return ErrBrokerNotAvailable

	case strings.Contains(errMsg, "authentication failed"):
		return ErrAuthenticationFailed
	case strings.Contains(errMsg, "authorization failed"):
		return ErrAuthorizationFailed

	case strings.Contains(errMsg, "topic not found"),
		strings.Contains(errMsg, "unknown topic"):
		return ErrTopicNotFound

	case strings.Contains(errMsg, "message too large"),
		strings.Contains(errMsg, "record too large"):
		return ErrMessageTooLarge

	case strings.Contains(errMsg, "leader not available"):
		return ErrLeaderNotAvailable
	case strings.Contains(errMsg, "not leader for partition"):
		return ErrNotLeaderForPartition

	case strings.Contains(errMsg, "request timed out"),
		strings.Contains(errMsg, "i/o timeout"),
		strings.Contains(errMsg, "timeout"):
		return ErrRequestTimedOut
	case strings.Contains(errMsg, "deadline exceeded"):
		return ErrContextDeadlineExceeded

	case strings.Contains(errMsg, "network"),
		strings.Contains(errMsg, "dial"):
		return ErrNetworkError

	case strings.Contains(errMsg, "unsupported version"):
		return ErrUnsupportedVersion

	case strings.Contains(errMsg, "context canceled"),
		strings.Contains(errMsg, "context cancelled"):
		return ErrContextCanceled

	default:
		return originalErr
	}
}

// IsRetryableError returns true if the error is worth retrying on a later report cycle.
// Kafka protocol errors flagged temporary by the broker are retryable as well.
func (k *KafkaClient) IsRetryableError(err error) bool {
	switch {
	case errors.Is(err, ErrConnectionFailed),
		errors.Is(err, ErrConnectionLost),
		errors.Is(err, ErrBrokerNotAvailable),
		errors.Is(err, ErrLeaderNotAvailable),
		errors.Is(err, ErrNotLeaderForPartition),
		errors.Is(err, ErrRequestTimedOut),
		errors.Is(err, ErrNetworkError),
		errors.Is(err, ErrContextDeadlineExceeded):
		return true
	}

	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return kerr.Temporary()
	}
	return false
}

// IsPermanentError returns true if the error is permanent and should not be retried
func (k *KafkaClient) IsPermanentError(err error) bool {
	switch {
	case errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrAuthorizationFailed),
		errors.Is(err, ErrTopicNotFound),
		errors.Is(err, ErrMessageTooLarge),
		errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrUnsupportedVersion),
		errors.Is(err, ErrWriterNotInitialized),
		errors.Is(err, ErrContextCanceled):
		return true
	default:
		return false
	}
}

// IsAuthenticationError returns true if the error is authentication-related
func (k *KafkaClient) IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed) || errors.Is(err, ErrAuthorizationFailed)
}
