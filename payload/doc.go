/*
Package payload turns batches of finished spans into the bytes a transport ships.

A Report is one batch: the reporter identity (runtime GUID, component name and reporter tags),
the drop counters accumulated since the last successful report, and the spans themselves.
An Encoder serializes a Report and estimates the encoded size of a span batch so the reporter
can split large drains into payloads that stay under the configured limit.

JSONEncoder is the built-in Encoder. It renders the report with github.com/bytedance/sonic and
optionally compresses the result with gzip or zstd from github.com/klauspost/compress:

	enc, err := payload.NewJSONEncoder(payload.Config{Compression: payload.CompressionGzip})
	if err != nil {
		return err
	}
	data, err := enc.Encode(&payload.Report{
		ReporterGUID: guid,
		Component:    "checkout",
		Spans:        spans,
	})

Decode is the inverse and is used by collectors and tests that need to inspect a payload.
*/
package payload
