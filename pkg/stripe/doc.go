// Package stripe provides the request/response core of a client for the
// Stripe payment API: URL construction, authentication headers, form-encoded
// parameter bodies, transport dispatch, and status-driven response
// classification.
//
// # Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fairpay-io/stripe-client/pkg/stripe"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  client, err := stripe.New("sk_test_...")
//	  if err != nil { log.Fatal(err) }
//
//	  type balance struct {
//	    Available []struct {
//	      Amount   int64  `json:"amount"`
//	      Currency string `json:"currency"`
//	    } `json:"available"`
//	  }
//
//	  bal, err := stripe.Get[balance](ctx, client, "/balance")
//	  if err != nil { log.Fatal(err) }
//	  _ = bal
//	}
//
// # Requests
//
// Get, Post, PostEmpty, and Delete follow the same pipeline: the path is
// joined onto the fixed versioned API base, credentials and scoping headers
// are attached, POST parameters are form-encoded with bracketed key paths for
// nested fields, and the response is classified by status code. The generic
// package functions decode a 2xx body into the requested type; the Client
// methods of the same names return the raw body for callers that decode
// themselves.
//
// # Connected accounts
//
// Use With to branch a client onto a different account:
//
//	scoped := client.With(stripe.Params{StripeAccount: "acct_123"})
//
// The clone shares the secret key and the transport's connection pool but
// carries its own scoping params, so clones can serve different accounts
// concurrently. SetStripeAccount mutates a client in place and is only
// appropriate when the process acts as one account for the client's lifetime.
//
// # Errors
//
// Every failure is one of four kinds: *APIError (a structured non-2xx
// response, always carrying the observed HTTP status), *TransportError (the
// request never completed), *SerializationError (parameters could not be
// encoded), or *DeserializationError (a 2xx body could not be decoded).
// IsAPIError, IsTransportError, IsSerializationError, and
// IsDeserializationError make it easy to branch on them, for example to
// decide whether a call is worth retrying.
package stripe
