package http

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/fairpay-io/stripe-client/internal/constants"
)

// settings holds construction-time configuration shared by all Transport
// backends.
type settings struct {
	httpClient *http.Client
	tlsConfig  *tls.Config
	timeout    time.Duration
	logger     Logger
	debug      bool
}

// Option configures a Transport at construction time.
type Option func(*settings)

func applyOptions(opts []Option) *settings {
	applied := &settings{
		timeout: constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(applied)
	}

	return applied
}

// WithHTTPClient replaces the underlying *http.Client entirely. Timeout and
// TLS options are ignored when a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.httpClient = client
	}
}

// WithTLSConfig sets the TLS configuration for the underlying connection
// pool. This is the construction-time hook for selecting a TLS stack.
func WithTLSConfig(config *tls.Config) Option {
	return func(s *settings) {
		s.tlsConfig = config
	}
}

// WithTimeout sets the whole-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithLogger sets the logger for the transport.
func WithLogger(logger Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		s.debug = debug
	}
}
