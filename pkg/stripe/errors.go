package stripe

import (
	"errors"
	"fmt"
)

// ErrorType classifies the error object returned by the payment API.
type ErrorType string

// Error types returned by the API.
const (
	ErrorTypeAPI            ErrorType = "api_error"
	ErrorTypeCard           ErrorType = "card_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	ErrorTypeAuthentication ErrorType = "authentication_error"
	ErrorTypeRateLimit      ErrorType = "rate_limit_error"
)

// APIError represents the structured error the API returns on a non-2xx
// response. HTTPStatus is not part of the wire payload; the client stamps it
// from the observed response status before returning the error.
type APIError struct {
	Type    ErrorType `json:"type,omitempty"    yaml:"type,omitempty"`
	Code    string    `json:"code,omitempty"    yaml:"code,omitempty"`
	Message string    `json:"message,omitempty" yaml:"message,omitempty"`
	Param   string    `json:"param,omitempty"   yaml:"param,omitempty"`
	Charge  string    `json:"charge,omitempty"  yaml:"charge,omitempty"`

	HTTPStatus int `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.HTTPStatus)
	}

	return fmt.Sprintf("%s (status %d)", e.Message, e.HTTPStatus)
}

// ErrorEnvelope is the wire shape of an API error body: {"error": {...}}.
type ErrorEnvelope struct {
	Err *APIError `json:"error"`
}

// TransportError represents a connection, TLS, or read failure that occurred
// before a complete response was obtained. The client does not retry it;
// callers may reasonably choose to.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SerializationError means the outbound parameters could not be encoded into
// a form body. No request was sent.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("encoding request parameters: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// DeserializationError means a successful (2xx) response body could not be
// decoded into the requested type.
type DeserializationError struct {
	Err error
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decoding response body: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrSecretKeyRequired = errors.New("secret key is required")
	ErrInvalidPath       = errors.New("path must begin with '/'")

	errMissingErrorField = errors.New(`body has no "error" field`)
)

// IsAPIError checks if the error is a structured API error and returns it.
func IsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsTransportError checks if the error is a transport failure.
func IsTransportError(err error) bool {
	target := &TransportError{}

	return errors.As(err, &target)
}

// IsSerializationError checks if the error is a parameter encoding failure.
func IsSerializationError(err error) bool {
	target := &SerializationError{}

	return errors.As(err, &target)
}

// IsDeserializationError checks if the error is a response decoding failure.
func IsDeserializationError(err error) bool {
	target := &DeserializationError{}

	return errors.As(err, &target)
}
