package remote

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
)

// DefaultTimeout bounds a call that would otherwise hang the fallback decision.
const DefaultTimeout = 5 * time.Second

const maxBodySize = 4 << 20

// Client talks to the remote store. Every call is a single attempt.
type Client struct {
	doer heimdall.Doer
}

type Option func(*options)

type options struct {
	timeout time.Duration
	doer    heimdall.Doer
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithDoer replaces the underlying transport, e.g. http.DefaultClient.
func WithDoer(d heimdall.Doer) Option {
	return func(o *options) { o.doer = d }
}

func NewClient(opts ...Option) *Client {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout <= 0 {
		o.timeout = DefaultTimeout
	}

	hc := []httpclient.Option{
		httpclient.WithHTTPTimeout(o.timeout),
		httpclient.WithRetryCount(0),
	}
	if o.doer != nil {
		hc = append(hc, httpclient.WithHTTPClient(o.doer))
	}
	return &Client{doer: httpclient.NewClient(hc...)}
}

// Post sends body as JSON to endpoint.
func (c *Client) Post(ctx context.Context, endpoint string, body []byte) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return TransportError{Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, false)
}

// Get fetches endpoint.
func (c *Client) Get(ctx context.Context, endpoint string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TransportError{Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, true)
}

// do performs req. The status alone decides a write: once a 2xx arrives the
// record is stored remotely, so the body is drained best effort and never
// turned into a failure. Reads need the body and report it as a transport fault.
func (c *Client) do(req *http.Request, readBody bool) Outcome {
	resp, err := c.doer.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return HTTPError{Status: resp.StatusCode}
	}

	if !readBody {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return Success{Status: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return TransportError{Cause: err}
	}
	return Success{Status: resp.StatusCode, Body: b}
}
