package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Client publishes encoded span reports to a Kafka topic.
//
// This interface is implemented by the concrete *KafkaClient type.
type Client interface {
	// SendBatch produces one message carrying an encoded report.
	SendBatch(ctx context.Context, payload []byte) error

	// Close flushes and closes the underlying writer.
	Close() error

	// TranslateError translates Kafka errors to the package's sentinel errors.
	TranslateError(err error) error

	// IsRetryableError checks if an error can be retried.
	IsRetryableError(err error) bool

	// IsPermanentError checks if an error is permanent.
	IsPermanentError(err error) bool

	// IsAuthenticationError checks if an error is authentication-related.
	IsAuthenticationError(err error) bool
}

// messageWriter is the subset of *kafka.Writer the client uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
