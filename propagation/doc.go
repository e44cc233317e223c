// Package propagation serializes a span's identity across process boundaries.
//
// Three carrier formats are supported and no others: TextMap, HTTPHeaders and Binary.
// Each has a fixed, versioned wire shape so that a context injected by this client can be
// extracted by other OpenTracing implementations and vice versa.
//
// # TextMap / HTTPHeaders
//
//	ot-tracer-traceid: 16 or 32 lowercase hex digits
//	ot-tracer-spanid:  16 lowercase hex digits
//	ot-tracer-sampled: "true"
//	ot-baggage-<key>:  baggage value (URL-escaped for HTTPHeaders)
//
// # Binary
//
// See binary.go for the byte layout.
//
// # Usage
//
//	headers := http.Header{}
//	if err := propagation.Inject(span.Context(), propagation.HTTPHeaders, headers); err != nil {
//	    return err
//	}
//
//	sc, found, err := propagation.Extract(propagation.HTTPHeaders, r.Header)
//	switch {
//	case err != nil:
//	    // corrupted or unsupported carrier
//	case !found:
//	    // untraced request: start a root span
//	}
package propagation
