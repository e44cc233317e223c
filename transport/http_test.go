package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/lstrace/observability"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(op observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *recordingObserver) operations() []observability.OperationContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observability.OperationContext(nil), r.ops...)
}

func TestNewHTTPTransport_RequiresURL(t *testing.T) {
	t.Parallel()
	_, err := NewHTTPTransport(HTTPConfig{}, Options{})
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestHTTPTransport_SendsHeadersAndBody(t *testing.T) {
	t.Parallel()

	type captured struct {
		method, path, token, ctype, encoding, reporter, body string
	}
	got := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got <- captured{
			method:   r.Method,
			path:     r.URL.Path,
			token:    r.Header.Get(HeaderAccessToken),
			ctype:    r.Header.Get(HeaderContentType),
			encoding: r.Header.Get(HeaderContentEncoding),
			reporter: r.Header.Get(HeaderReporterID),
			body:     string(body),
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	tr, err := NewHTTPTransport(HTTPConfig{URL: srv.URL + "/"}, Options{AccessToken: "secret", Observer: obs})
	require.NoError(t, err)
	defer tr.Close()

	tr.DescribeReports(ReportMeta{ReporterGUID: "guid-1", ContentType: "application/json", ContentEncoding: "identity"})
	require.NoError(t, tr.SendBatch(context.Background(), []byte(`{"spans":[]}`)))

	c := <-got
	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, DefaultHTTPPath, c.path)
	assert.Equal(t, "secret", c.token)
	assert.Equal(t, "application/json", c.ctype)
	assert.Equal(t, "identity", c.encoding)
	assert.Equal(t, "guid-1", c.reporter)
	assert.Equal(t, `{"spans":[]}`, c.body)

	ops := obs.operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "transport", ops[0].Component)
	assert.Equal(t, "send", ops[0].Operation)
	assert.Equal(t, KindHTTP, ops[0].Resource)
	assert.Equal(t, int64(12), ops[0].Size)
	assert.NoError(t, ops[0].Error)
}

func TestHTTPTransport_StatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status    int
		retryable bool
	}{
		{status: http.StatusBadRequest, retryable: false},
		{status: http.StatusUnauthorized, retryable: false},
		{status: http.StatusTooManyRequests, retryable: true},
		{status: http.StatusInternalServerError, retryable: true},
		{status: http.StatusServiceUnavailable, retryable: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			tr, err := NewHTTPTransport(HTTPConfig{URL: srv.URL}, Options{})
			require.NoError(t, err)

			err = tr.SendBatch(context.Background(), []byte("x"))
			require.Error(t, err)

			var te *Error
			require.True(t, errors.As(err, &te))
			assert.Equal(t, KindHTTP, te.Op)
			assert.Equal(t, tt.retryable, te.Retryable)
			assert.ErrorIs(t, err, ErrUnexpectedStatus)
		})
	}
}

func TestHTTPTransport_NetworkErrorIsRetryable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr, err := NewHTTPTransport(HTTPConfig{URL: url, Timeout: time.Second}, Options{})
	require.NoError(t, err)

	err = tr.SendBatch(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}

func TestHTTPTransport_HonorsContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	tr, err := NewHTTPTransport(HTTPConfig{URL: srv.URL}, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = tr.SendBatch(ctx, []byte("x"))
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.True(t, IsRetryable(err))
}

func TestHTTPTransport_InRequestRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(HTTPConfig{URL: srv.URL, MaxRetries: 2}, Options{})
	require.NoError(t, err)

	require.NoError(t, tr.SendBatch(context.Background(), []byte("x")))
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPTransport_Closed(t *testing.T) {
	t.Parallel()

	tr, err := NewHTTPTransport(HTTPConfig{URL: "http://127.0.0.1:1"}, Options{})
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	err = tr.SendBatch(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, IsRetryable(err))
}
