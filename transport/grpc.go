package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/aalemi-dev/lstrace/observability"
)

// rawCodec passes pre-encoded payloads through gRPC untouched.
type rawCodec struct{}

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case *[]byte:
		return *b, nil
	default:
		return nil, fmt.Errorf("raw codec: cannot marshal %T", v)
	}
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	b, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("raw codec: cannot unmarshal into %T", v)
	}
	*b = append((*b)[:0], data...)
	return nil
}

func (rawCodec) Name() string {
	return "raw"
}

// GRPCTransport invokes a unary collector method with the encoded report as the request body.
type GRPCTransport struct {
	conn     *grpc.ClientConn
	method   string
	endpoint string
	token    string
	observer observability.Observer

	mu   sync.RWMutex
	meta ReportMeta
}

// NewGRPCTransport creates a client connection to cfg.Endpoint. The connection is
// established lazily on the first send. Extra dial options are appended after the defaults.
func NewGRPCTransport(cfg GRPCConfig, opts Options, dialOpts ...grpc.DialOption) (*GRPCTransport, error) {
	cfg = applyGRPCDefaults(cfg)

	creds := insecure.NewCredentials()
	if !cfg.Plaintext {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	all := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveTime,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: false,
		}),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(cfg.MaxMessageSize),
			grpc.MaxCallSendMsgSize(cfg.MaxMessageSize),
		),
		grpc.WithUserAgent(DefaultUserAgent),
	}
	all = append(all, dialOpts...)

	conn, err := grpc.NewClient(cfg.Endpoint, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create collector client: %w", err)
	}

	return &GRPCTransport{
		conn:     conn,
		method:   cfg.Method,
		endpoint: cfg.Endpoint,
		token:    opts.AccessToken,
		observer: opts.Observer,
	}, nil
}

func applyGRPCDefaults(cfg GRPCConfig) GRPCConfig {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultGRPCEndpoint
	}
	if cfg.Method == "" {
		cfg.Method = DefaultGRPCMethod
	}
	if cfg.KeepaliveTime == 0 {
		cfg.KeepaliveTime = DefaultKeepaliveTime
	}
	if cfg.KeepaliveTimeout == 0 {
		cfg.KeepaliveTimeout = DefaultKeepaliveTimeout
	}
	if cfg.MaxMessageSize == 0 {
		cfg.MaxMessageSize = DefaultMaxMessageSize
	}
	return cfg
}

// DescribeReports implements ReportDescriber.
func (g *GRPCTransport) DescribeReports(meta ReportMeta) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.meta = meta
}

// SendBatch implements Transport.
func (g *GRPCTransport) SendBatch(ctx context.Context, payload []byte) error {
	start := time.Now()
	err := g.send(ctx, payload)
	observeSend(g.observer, KindGRPC, g.endpoint, time.Since(start), err, len(payload))
	return err
}

func (g *GRPCTransport) send(ctx context.Context, payload []byte) error {
	g.mu.RLock()
	meta := g.meta
	g.mu.RUnlock()

	md := metadata.Pairs()
	if g.token != "" {
		md.Set(HeaderAccessToken, g.token)
	}
	if meta.ReporterGUID != "" {
		md.Set(HeaderReporterID, meta.ReporterGUID)
	}
	if meta.ContentType != "" {
		md.Set(MetadataPayloadType, meta.ContentType)
	}
	if meta.ContentEncoding != "" {
		md.Set(MetadataPayloadEncoding, meta.ContentEncoding)
	}
	ctx = metadata.NewOutgoingContext(ctx, md)

	var reply []byte
	err := g.conn.Invoke(ctx, g.method, payload, &reply, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		return newError(KindGRPC, retryableCode(status.Code(err)), err)
	}
	return nil
}

// Close closes the client connection.
func (g *GRPCTransport) Close() error {
	return g.conn.Close()
}

func retryableCode(code codes.Code) bool {
	switch code {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted, codes.Internal:
		return true
	default:
		return false
	}
}
