package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	stripehttp "github.com/fairpay-io/stripe-client/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

// transports enumerates every backend so each contract test runs against all
// of them.
func transports(opts ...stripehttp.Option) map[string]stripehttp.Transport {
	return map[string]stripehttp.Transport{
		"net/http": stripehttp.NewTransport(opts...),
		"resty":    stripehttp.NewRestyTransport(opts...),
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestTransport_Do(t *testing.T) {
	t.Parallel()

	for name, transport := range transports() {
		transport := transport
		t.Run(name+" successful request", func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/v1/charges", request.URL.Path)
				assert.Equal(t, "GET", request.Method)
				assert.Equal(t, "Basic c2tfdGVzdDo=", request.Header.Get("Authorization"))

				_ = json.NewEncoder(writer).Encode(map[string]string{"id": "ch_123", "status": "succeeded"})
			}))
			defer server.Close()

			req := &stripehttp.Request{
				Method: "GET",
				URL:    server.URL + "/v1/charges",
				Header: map[string]string{"Authorization": "Basic c2tfdGVzdDo="},
			}

			resp, err := transport.Do(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)

			var result map[string]string

			err = json.Unmarshal(resp.Body, &result)
			require.NoError(t, err)
			assert.Equal(t, "ch_123", result["id"])
		})

		t.Run(name+" request with body", func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "POST", request.Method)
				assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

				err := request.ParseForm()
				require.NoError(t, err)
				assert.Equal(t, "2000", request.PostForm.Get("amount"))

				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			req := &stripehttp.Request{
				Method: "POST",
				URL:    server.URL + "/v1/charges",
				Header: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
				Body:   []byte("amount=2000&currency=usd"),
			}

			resp, err := transport.Do(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})

		t.Run(name+" non-2xx passes through without error", func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(http.StatusPaymentRequired)
				_, _ = writer.Write([]byte(`{"error":{"message":"card declined"}}`))
			}))
			defer server.Close()

			req := &stripehttp.Request{Method: "GET", URL: server.URL + "/v1/charges"}

			resp, err := transport.Do(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, 402, resp.StatusCode)
			assert.JSONEq(t, `{"error":{"message":"card declined"}}`, string(resp.Body))
		})
	}
}

func TestTransport_ConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	server.Close()

	for name, transport := range transports() {
		transport := transport
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			req := &stripehttp.Request{Method: "GET", URL: server.URL + "/v1/charges"}

			resp, err := transport.Do(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, resp)
		})
	}
}

func TestTransport_SingleShot(t *testing.T) {
	t.Parallel()

	for name, transport := range transports() {
		transport := transport
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var (
				mu       sync.Mutex
				attempts int
			)

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				mu.Lock()
				attempts++
				mu.Unlock()

				writer.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			req := &stripehttp.Request{Method: "GET", URL: server.URL + "/v1/charges"}

			resp, err := transport.Do(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, 500, resp.StatusCode)

			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 1, attempts)
		})
	}
}

func TestTransport_ConcurrentRequests(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// Echo the request path so cross-talk between in-flight requests
		// would show up in the bodies.
		_, _ = writer.Write([]byte(request.URL.Path))
	}))
	defer server.Close()

	transport := stripehttp.NewTransport()

	var wg sync.WaitGroup

	for _, path := range []string{"/v1/a", "/v1/b", "/v1/c", "/v1/d"} {
		path := path
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < 10; i++ {
				req := &stripehttp.Request{Method: "GET", URL: server.URL + path}

				resp, err := transport.Do(context.Background(), req)
				assert.NoError(t, err)
				assert.Equal(t, path, string(resp.Body))
			}
		}()
	}

	wg.Wait()
}

func TestTransport_ContextCancellation(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		close(started)
		<-release
	}))
	defer server.Close()
	defer close(release)

	transport := stripehttp.NewTransport()

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-started
		cancel()
	}()

	req := &stripehttp.Request{Method: "GET", URL: server.URL + "/v1/slow"}

	resp, err := transport.Do(ctx, req)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
}

func TestTransport_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
	}))
	defer server.Close()

	logger := &MockLogger{}
	transport := stripehttp.NewTransport(stripehttp.WithLogger(logger), stripehttp.WithDebug(true))

	req := &stripehttp.Request{Method: "GET", URL: server.URL + "/v1/charges"}

	_, err := transport.Do(context.Background(), req)
	require.NoError(t, err)

	// Should have logged request and response
	require.Len(t, logger.logs, 2)
	assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
	assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
}

func TestTransport_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		<-release
	}))

	defer server.Close()
	defer close(release)

	transport := stripehttp.NewTransport(stripehttp.WithTimeout(50 * time.Millisecond))

	req := &stripehttp.Request{Method: "GET", URL: server.URL + "/v1/slow"}

	resp, err := transport.Do(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, resp)
}
