/*
Package kafka ships encoded span reports to an Apache Kafka topic.

It is one of the transports the tracer can report through: every SendBatch call produces a
single message whose value is the encoded report, whose key is the reporter GUID (so one
tracer's reports stay ordered on a partition) and whose headers describe the payload encoding
and carry the access token. A collector consumes the topic on the other side.

The producer is built on github.com/segmentio/kafka-go and supports TLS, SASL
(PLAIN, SCRAM-SHA-256, SCRAM-SHA-512) and writer-side compression.

Basic Usage:

	client, err := kafka.NewClient(kafka.Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "spans",
	})
	if err != nil {
		return err
	}
	defer client.Close()

	client.WithKey(tracer.RuntimeGUID()).WithHeaders(map[string]string{
		kafka.HeaderContentType:     "application/json",
		kafka.HeaderContentEncoding: "gzip",
		kafka.HeaderAccessToken:     token,
	})

	if err := client.SendBatch(ctx, payload); err != nil {
		if client.IsRetryableError(err) {
			// keep the spans for the next report cycle
		}
	}

Error Handling:

SendBatch wraps failures in sentinel errors (ErrBrokerNotAvailable, ErrMessageTooLarge, ...)
so callers can use errors.Is. IsRetryableError, IsPermanentError and IsAuthenticationError
classify them.

FX Module Integration:

	app := fx.New(
		logger.FXModule,
		kafka.FXModule,
		fx.Provide(func() kafka.Config { return cfg.Kafka }),
	)

Observability:

When an observability.Observer is attached, every SendBatch reports a "send" operation with the
topic as resource, the payload size and the outcome.
*/
package kafka
