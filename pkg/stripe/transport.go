package stripe

import (
	stripehttp "github.com/fairpay-io/stripe-client/internal/http"
)

// Transport dispatches one fully built request and blocks until the round
// trip resolves. Implementations must support concurrent in-flight requests
// and perform no retries: one call is one dispatch.
//
// Custom backends implement this interface and are supplied via
// WithTransport; the default backends satisfy it.
type Transport = stripehttp.Transport

// Request is a fully built API request as handed to a Transport. Requests
// are constructed fresh for every call and never reused.
type Request = stripehttp.Request

// Response is the buffered result of one dispatch. The body is read in full
// before the response is returned.
type Response = stripehttp.Response
