package transport

import "context"

// Transport delivers one encoded report to the collector.
//
// SendBatch must honor ctx: the reporter cancels it when a send exceeds its timeout or the
// tracer is stopping. Errors should be *Error so callers can tell retryable failures apart.
type Transport interface {
	SendBatch(ctx context.Context, payload []byte) error
	Close() error
}

// ReportMeta describes the reports a tracer will send.
type ReportMeta struct {
	ReporterGUID    string
	ContentType     string
	ContentEncoding string
}

// ReportDescriber is implemented by transports that label payloads with the reporter
// identity and the payload encoding. The tracer calls DescribeReports once, before the
// first report is sent.
type ReportDescriber interface {
	DescribeReports(meta ReportMeta)
}

// Logger is the logging contract transports use; it matches logger.Logger.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
