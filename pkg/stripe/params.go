package stripe

// Params carries per-call request scoping.
//
// StripeAccount, when set, makes requests on behalf of a connected account by
// sending the Stripe-Account header. The zero value means no scoping. Params
// is a plain value: attaching different Params to a client clone never
// affects the client it was cloned from.
//
// Future per-call options (metadata, expansion directives) belong here.
type Params struct {
	StripeAccount string
}
