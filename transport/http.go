package transport

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/aalemi-dev/lstrace/observability"
)

// HTTPTransport POSTs encoded reports to a collector endpoint.
type HTTPTransport struct {
	resty    *resty.Client
	limiter  *rate.Limiter
	path     string
	endpoint string
	token    string
	observer observability.Observer

	mu     sync.RWMutex
	meta   ReportMeta
	closed bool
}

// NewHTTPTransport builds a resty client over the pooled transport from go-retryablehttp.
func NewHTTPTransport(cfg HTTPConfig, opts Options) (*HTTPTransport, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: http transport requires a URL", ErrMissingEndpoint)
	}
	if cfg.Path == "" {
		cfg.Path = DefaultHTTPPath
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultHTTPTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	restyClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(100*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || retryableStatus(r.StatusCode())
		}).
		SetHeader("User-Agent", cfg.UserAgent)
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &HTTPTransport{
		resty:    restyClient,
		limiter:  limiter,
		path:     cfg.Path,
		endpoint: cfg.URL + cfg.Path,
		token:    opts.AccessToken,
		observer: opts.Observer,
	}, nil
}

// DescribeReports implements ReportDescriber.
func (h *HTTPTransport) DescribeReports(meta ReportMeta) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.meta = meta
}

// SendBatch implements Transport.
func (h *HTTPTransport) SendBatch(ctx context.Context, payload []byte) error {
	start := time.Now()
	err := h.send(ctx, payload)
	observeSend(h.observer, KindHTTP, h.endpoint, time.Since(start), err, len(payload))
	return err
}

func (h *HTTPTransport) send(ctx context.Context, payload []byte) error {
	h.mu.RLock()
	meta, closed := h.meta, h.closed
	h.mu.RUnlock()
	if closed {
		return newError(KindHTTP, false, ErrClosed)
	}

	if err := h.limiter.Wait(ctx); err != nil {
		return newError(KindHTTP, true, fmt.Errorf("rate limit: %w", err))
	}

	contentType := meta.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req := h.resty.R().
		SetContext(ctx).
		SetHeader(HeaderContentType, contentType).
		SetBody(payload)
	if meta.ContentEncoding != "" {
		req.SetHeader(HeaderContentEncoding, meta.ContentEncoding)
	}
	if h.token != "" {
		req.SetHeader(HeaderAccessToken, h.token)
	}
	if meta.ReporterGUID != "" {
		req.SetHeader(HeaderReporterID, meta.ReporterGUID)
	}

	resp, err := req.Post(h.path)
	if err != nil {
		return newError(KindHTTP, ctx.Err() == nil || ctx.Err() == context.DeadlineExceeded, err)
	}
	if resp.IsError() {
		return newError(KindHTTP, retryableStatus(resp.StatusCode()),
			fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status()))
	}
	return nil
}

// Close stops further sends and releases idle connections.
func (h *HTTPTransport) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.resty.GetClient().CloseIdleConnections()
	return nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
