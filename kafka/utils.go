package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// SendBatch produces one message whose value is the encoded report.
//
// The error, if any, is translated into one of the package's sentinel errors while keeping
// the original message, so callers can classify it with IsRetryableError.
func (k *KafkaClient) SendBatch(ctx context.Context, payload []byte) error {
	start := time.Now()
	var sendErr error

	defer func() {
		k.observeOperation("send", k.cfg.Topic, "", time.Since(start), sendErr, int64(len(payload)))
	}()

	if err := ctx.Err(); err != nil {
		sendErr = err
		return sendErr
	}

	k.mu.RLock()
	writer := k.writer
	key := k.key
	headers := append([]kafka.Header(nil), k.headers...)
	k.mu.RUnlock()

	if writer == nil {
		sendErr = ErrWriterNotInitialized
		return sendErr
	}

	msg := kafka.Message{
		Key:     key,
		Value:   payload,
		Headers: headers,
		Time:    start,
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		sendErr = k.wrapError(err)
		return sendErr
	}
	return nil
}

// Close flushes pending writes and closes the writer. It is safe to call more than once.
func (k *KafkaClient) Close() error {
	k.closeOnce.Do(func() {
		k.mu.Lock()
		defer k.mu.Unlock()

		k.logInfo(context.Background(), "Closing Kafka client", nil)
		if k.writer != nil {
			if err := k.writer.Close(); err != nil {
				k.logWarn(context.Background(), "Failed to close Kafka writer", err, nil)
				k.closeErr = err
			}
		}
	})
	return k.closeErr
}

func (k *KafkaClient) wrapError(err error) error {
	translated := k.TranslateError(err)
	if translated == err {
		return err
	}
	return fmt.Errorf("%w: %v", translated, err)
}
