// Package http provides the transport layer for the payment API client: a
// pluggable Transport that sends one fully built request and yields the
// complete buffered response.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
)

// Request is a fully built API request. Requests are constructed fresh for
// every call and never reused.
type Request struct {
	Method string
	URL    string
	Header map[string]string
	Body   []byte
}

// Response is the buffered result of one dispatch. The body is read in full
// before the response is returned; no partial responses are surfaced.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport dispatches one request and blocks until the round trip resolves.
// Implementations must support concurrent in-flight requests; each call owns
// its request and response and shares no mutable state with other calls.
// A Transport performs no retries: one call is one dispatch.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Logger is the interface used for transport-level diagnostic logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// HTTPTransport is the default Transport, backed by net/http with a pooled
// connection transport. The pool is shared by every client holding a handle
// to the same HTTPTransport.
type HTTPTransport struct {
	client *http.Client
	logger Logger
	debug  bool
}

// Compile-time interface check.
var _ Transport = (*HTTPTransport)(nil)

// NewTransport creates the default net/http-backed transport.
func NewTransport(opts ...Option) *HTTPTransport {
	settings := applyOptions(opts)

	client := settings.httpClient
	if client == nil {
		pooled := cleanhttp.DefaultPooledTransport()
		if settings.tlsConfig != nil {
			pooled.TLSClientConfig = settings.tlsConfig
		}

		client = &http.Client{
			Transport: pooled,
			Timeout:   settings.timeout,
		}
	}

	return &HTTPTransport{
		client: client,
		logger: settings.logger,
		debug:  settings.debug,
	}
}

type roundTripResult struct {
	resp *Response
	err  error
}

// Do sends req and blocks until the response body has been read in full. The
// round trip runs on its own goroutine; the calling goroutine suspends on the
// result rather than busy-waiting, and wakes early if ctx is done.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for key, value := range req.Header {
		httpReq.Header.Set(key, value)
	}

	logRequest(t.logger, t.debug, req)

	resultCh := make(chan roundTripResult, 1)

	go func() {
		resultCh <- t.roundTrip(httpReq)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("request canceled: %w", ctx.Err())
	case result := <-resultCh:
		if result.err != nil {
			return nil, result.err
		}

		logResponse(t.logger, t.debug, result.resp)

		return result.resp, nil
	}
}

func (t *HTTPTransport) roundTrip(httpReq *http.Request) roundTripResult {
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return roundTripResult{err: fmt.Errorf("sending request: %w", err)}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return roundTripResult{err: fmt.Errorf("reading response body: %w", err)}
	}

	return roundTripResult{resp: &Response{StatusCode: httpResp.StatusCode, Body: body}}
}

func bodyReader(body []byte) io.Reader {
	if len(body) == 0 {
		return nil
	}

	return bytes.NewReader(body)
}

func logRequest(logger Logger, debug bool, req *Request) {
	if logger == nil || !debug {
		return
	}

	logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL,
		"body":   len(req.Body),
	})
}

func logResponse(logger Logger, debug bool, resp *Response) {
	if logger == nil || !debug {
		return
	}

	logger.Debug("HTTP Response", map[string]interface{}{
		"status": resp.StatusCode,
		"body":   len(resp.Body),
	})
}
