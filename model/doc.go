// Package model holds the data types shared by every stage of the tracing pipeline:
// trace and span ids, the propagated SpanContext, span references, and RawSpan, the
// immutable record a finished span becomes before it is buffered and reported.
package model
