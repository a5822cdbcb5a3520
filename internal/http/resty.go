package http

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-cleanhttp"
)

// RestyTransport is an alternate Transport backend built on go-resty. It is
// substitutable for HTTPTransport at construction time and honors the same
// single-shot dispatch contract (resty's retry machinery stays disabled).
type RestyTransport struct {
	client *resty.Client
	logger Logger
	debug  bool
}

var _ Transport = (*RestyTransport)(nil)

// NewRestyTransport creates a resty-backed transport.
func NewRestyTransport(opts ...Option) *RestyTransport {
	settings := applyOptions(opts)

	var client *resty.Client
	if settings.httpClient != nil {
		client = resty.NewWithClient(settings.httpClient)
	} else {
		client = resty.New()
		client.SetTransport(cleanhttp.DefaultPooledTransport())
		client.SetTimeout(settings.timeout)

		if settings.tlsConfig != nil {
			client.SetTLSClientConfig(settings.tlsConfig)
		}
	}

	return &RestyTransport{
		client: client,
		logger: settings.logger,
		debug:  settings.debug,
	}
}

// Do sends req through resty and returns the fully buffered response.
func (t *RestyTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	logRequest(t.logger, t.debug, req)

	request := t.client.R().SetContext(ctx).SetHeaders(req.Header)
	if len(req.Body) > 0 {
		request.SetBody(req.Body)
	}

	restyResp, err := request.Execute(req.Method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	resp := &Response{
		StatusCode: restyResp.StatusCode(),
		Body:       restyResp.Body(),
	}

	logResponse(t.logger, t.debug, resp)

	return resp, nil
}
