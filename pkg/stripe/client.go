package stripe

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fairpay-io/stripe-client/internal/constants"
	"github.com/fairpay-io/stripe-client/internal/form"
	stripehttp "github.com/fairpay-io/stripe-client/internal/http"
)

// API endpoint. Caller paths are relative to the versioned base and must
// begin with "/".
const (
	apiBase    = "https://api.stripe.com"
	apiVersion = "v1"

	// ClientVersion is reported in the User-Agent header.
	ClientVersion = "1.0.0"

	defaultUserAgent = "stripe-client-go/" + ClientVersion

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
	headerStripeAccount = "Stripe-Account"
	headerStripeVersion = "Stripe-Version"

	contentTypeForm = "application/x-www-form-urlencoded"
)

// Client issues authenticated requests against the payment API. It holds the
// secret key and the current scoping Params, and dispatches through a
// pluggable Transport.
//
// A Client is safe for concurrent use as long as SetStripeAccount is not
// called while requests are in flight; use With to branch per-account clients
// instead when serving multiple accounts from one process.
type Client struct {
	secretKey     string
	params        Params
	transport     Transport
	baseURL       string
	userAgent     string
	stripeVersion string
	logger        Logger
	debug         bool
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithTransport replaces the default transport backend. Any Transport
// implementation is substitutable here; the supplied transport is shared by
// all clones derived from this client.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithBaseURL overrides the API origin. Intended for tests and mock servers.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithParams sets the initial scoping params.
func WithParams(params Params) Option {
	return func(c *Client) {
		c.params = params
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithStripeVersion pins the API version sent in the Stripe-Version header.
func WithStripeVersion(version string) Option {
	return func(c *Client) {
		c.stripeVersion = version
	}
}

// WithLogger sets a logger for the client and its default transport.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables verbose request/response logging when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// New creates a client that authenticates with the given secret key.
func New(secretKey string, opts ...Option) (*Client, error) {
	if secretKey == "" {
		return nil, ErrSecretKeyRequired
	}

	client := &Client{
		secretKey: secretKey,
		baseURL:   apiBase,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.transport == nil {
		transportOpts := []stripehttp.Option{
			stripehttp.WithTimeout(constants.DefaultHTTPTimeout),
		}
		if client.logger != nil {
			transportOpts = append(transportOpts,
				stripehttp.WithLogger(&loggerAdapter{logger: client.logger}),
				stripehttp.WithDebug(client.debug))
		}

		client.transport = stripehttp.NewTransport(transportOpts...)
	}

	return client, nil
}

// With clones the client with different scoping params.
//
// This is the recommended way to issue requests for many different accounts
// from one process: the clone shares the secret key and the transport's
// connection pool, but its params are an independent copy.
func (c *Client) With(params Params) *Client {
	clone := *c
	clone.params = params

	return &clone
}

// SetStripeAccount sets the Stripe-Account scoping on this client in place.
//
// This is convenient when the process acts as a single account for the
// client's lifetime. It mutates shared state, so prefer With when multiple
// accounts are served concurrently.
func (c *Client) SetStripeAccount(accountID string) {
	c.params.StripeAccount = accountID
}

// Get issues a GET request and returns the raw 2xx response body.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post form-encodes params and issues a POST request, returning the raw 2xx
// response body. A nil params value sends an empty body.
func (c *Client) Post(ctx context.Context, path string, params any) (json.RawMessage, error) {
	body, err := form.Marshal(params)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	return c.Do(ctx, http.MethodPost, path, body)
}

// PostEmpty issues a POST request with no body. Used for server-side actions
// that take no parameters.
func (c *Client) PostEmpty(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, nil)
}

// Delete issues a DELETE request and returns the raw 2xx response body.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do builds one request, dispatches it, and classifies the response. A 2xx
// response yields the raw body; any other status yields an *APIError carrying
// the observed status. Transport failures yield a *TransportError.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	requestURL, err := c.apiURL(path)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method: method,
		URL:    requestURL,
		Header: make(map[string]string),
		Body:   body,
	}
	c.setHeaders(req.Header)

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < constants.StatusSuccessMin || resp.StatusCode > constants.StatusSuccessMax {
		return nil, classifyError(resp)
	}

	return resp.Body, nil
}

// apiURL joins the versioned API base with a caller-supplied resource path.
// Paths not beginning with "/" are a caller bug and fail fast.
func (c *Client) apiURL(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	raw := c.baseURL + "/" + apiVersion + path

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid request URL %q: %w", raw, err)
	}

	return parsed.String(), nil
}

// setHeaders attaches credentials and scoping to an outgoing request. The
// secret key goes in the username half of HTTP Basic auth with an empty
// password. Assignment semantics make repeated calls idempotent.
func (c *Client) setHeaders(header map[string]string) {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.secretKey + ":"))
	header[headerAuthorization] = "Basic " + credentials
	header[headerContentType] = contentTypeForm
	header[headerUserAgent] = c.userAgent

	if c.stripeVersion != "" {
		header[headerStripeVersion] = c.stripeVersion
	}

	if c.params.StripeAccount != "" {
		header[headerStripeAccount] = c.params.StripeAccount
	}
}

// classifyError turns a non-2xx response into an *APIError. A body that does
// not decode as an error envelope downgrades to a synthesized APIError whose
// message carries the decode diagnostic, so callers always receive a
// structured error with the observed status stamped on it.
func classifyError(resp *Response) *APIError {
	var envelope ErrorEnvelope

	err := json.Unmarshal(resp.Body, &envelope)
	if err == nil && envelope.Err == nil {
		err = errMissingErrorField
	}

	apiErr := envelope.Err
	if err != nil {
		apiErr = &APIError{
			Message: fmt.Sprintf("failed to deserialize error response: %v", err),
		}
	}

	apiErr.HTTPStatus = resp.StatusCode

	return apiErr
}

// Get issues a GET request and decodes the 2xx response body into T.
func Get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	body, err := c.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	return decode[T](body)
}

// Post form-encodes params, issues a POST request, and decodes the 2xx
// response body into T.
func Post[T any](ctx context.Context, c *Client, path string, params any) (*T, error) {
	body, err := c.Post(ctx, path, params)
	if err != nil {
		return nil, err
	}

	return decode[T](body)
}

// PostEmpty issues a bodyless POST request and decodes the 2xx response body
// into T.
func PostEmpty[T any](ctx context.Context, c *Client, path string) (*T, error) {
	body, err := c.PostEmpty(ctx, path)
	if err != nil {
		return nil, err
	}

	return decode[T](body)
}

// Delete issues a DELETE request and decodes the 2xx response body into T.
func Delete[T any](ctx context.Context, c *Client, path string) (*T, error) {
	body, err := c.Delete(ctx, path)
	if err != nil {
		return nil, err
	}

	return decode[T](body)
}

func decode[T any](body []byte) (*T, error) {
	var value T

	err := json.Unmarshal(body, &value)
	if err != nil {
		return nil, &DeserializationError{Err: err}
	}

	return &value, nil
}
