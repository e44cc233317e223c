/*
Package minio stores encoded span reports in an S3-compatible object store.

It is one of the transports the tracer can report through. Every SendBatch call uploads one
object holding a complete encoded report. Keys are laid out by day so that batch jobs can
pick up a day's worth of spans:

	<prefix>/<yyyy>/<mm>/<dd>/<reporter guid>-<sequence>

The object carries the payload's Content-Type and Content-Encoding and the reporter GUID as
user metadata. The client is built on github.com/minio/minio-go/v7.

Basic Usage:

	client, err := minio.NewClient(minio.Config{
		Connection: minio.ConnectionConfig{
			Endpoint:        "localhost:9000",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
		},
		Bucket:       "traces",
		CreateBucket: true,
	})
	if err != nil {
		return err
	}
	if err := client.EnsureBucket(ctx); err != nil {
		return err
	}

	client.WithReporterID(guid).WithContentType("application/json", "gzip")
	err = client.SendBatch(ctx, payload)

Error Handling:

Errors are wrapped in sentinel errors (ErrServiceUnavailable, ErrAccessDenied, ...) and can be
classified with IsRetryableError and IsPermanentError.

Observability:

With an observability.Observer attached, each upload reports a "send" operation with the bucket
as resource and the object key as sub-resource.
*/
package minio
