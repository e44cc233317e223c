/*
Package transport delivers encoded span reports to a collector.

A Transport has a single job: send one payload, honoring the context deadline, and report
whether a failure is worth retrying. Failures are *Error values carrying a Retryable flag.
The reporter restores the spans of any failed batch and sends them again on a later cycle.

Four implementations are available and New picks one from Config.Kind:

  - "grpc": GRPCTransport invokes a unary collector method with the encoded report as the raw
    request body. The access token travels in request metadata. Unavailable, DeadlineExceeded,
    ResourceExhausted, Aborted and Internal are retryable.
  - "http": HTTPTransport POSTs the report with github.com/go-resty/resty/v2 over the pooled
    transport from github.com/hashicorp/go-retryablehttp, with an optional client-side rate
    limit. Network errors, 429 and 5xx are retryable.
  - "kafka": KafkaTransport produces the report to a topic through the kafka package.
  - "minio": MinioTransport stores the report as an object through the minio package.

Transports that implement ReportDescriber learn the reporter GUID and payload encoding from
the tracer before the first send:

	t, err := transport.New(transport.Config{
		Kind: transport.KindHTTP,
		HTTP: transport.HTTPConfig{URL: "https://collector.example.com"},
	}, transport.Options{AccessToken: token})
	if err != nil {
		return err
	}
	tr, err := tracer.NewTracer(cfg, t)
*/
package transport
