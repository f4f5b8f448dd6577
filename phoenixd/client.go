// Package phoenixd is a client for the HTTP API of a phoenixd Lightning
// node: invoices, payments and node info.
package phoenixd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/imroc/req"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Client talks to a single phoenixd node. It is immutable after New and
// safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	webhookURL *url.URL
	header     req.Header
	r          *req.Req
	log        log.FieldLogger
}

type Option func(*options)

type options struct {
	webhookURL string
	httpClient *http.Client
	logger     log.FieldLogger
}

// WithWebhookURL sets the URL the node is told to push payment
// notifications to when an invoice is created without one.
func WithWebhookURL(u string) Option {
	return func(o *options) {
		o.webhookURL = u
	}
}

// WithHTTPClient replaces the http.Client used for node requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func WithLogger(l log.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns a client for the node at baseURL authenticating with the
// api password.
func New(password, baseURL string, opts ...Option) (*Client, error) {
	o := options{logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	base, err := parseURL(baseURL)
	if err != nil {
		return nil, newError("new", ErrInvalidURL, fmt.Errorf("base url: %w", err))
	}
	c := &Client{
		baseURL: base,
		// basic auth with an empty user name
		header: req.Header{
			"Accept":        "application/json",
			"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+password)),
		},
		r:   req.New(),
		log: o.logger,
	}
	if o.webhookURL != "" {
		if c.webhookURL, err = parseURL(o.webhookURL); err != nil {
			return nil, newError("new", ErrInvalidURL, fmt.Errorf("webhook url: %w", err))
		}
	}
	if o.httpClient != nil {
		c.r.SetClient(o.httpClient)
	}
	return c, nil
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u, nil
}

// BaseURL returns a copy of the node url.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// WebhookURL returns a copy of the configured webhook url, or nil.
func (c *Client) WebhookURL() *url.URL {
	if c.webhookURL == nil {
		return nil
	}
	u := *c.webhookURL
	return &u
}

// Response is a raw node response. Non-2xx statuses are not errors at
// this level.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON returns the body as a generic JSON value.
func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Get issues an authenticated GET for path relative to the base url.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues an authenticated POST. A nil body sends no body, otherwise
// body is sent as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	endpoint := c.baseURL.JoinPath(path).String()
	c.log.Debugf("[phoenixd] %s %s", method, endpoint)

	args := []interface{}{ctx, c.header}
	if body != nil {
		args = append(args, req.BodyJSON(body))
	}
	op := method + " " + path
	resp, err := c.r.Do(method, endpoint, args...)
	if err != nil {
		return nil, newError(op, ErrTransport, err)
	}
	data, err := resp.ToBytes()
	if err != nil {
		return nil, newError(op, ErrTransport, err)
	}
	return &Response{StatusCode: resp.Response().StatusCode, Body: data}, nil
}

// decode interprets res as the success shape v. On mismatch the raw body
// is logged and a kind error is returned.
func (c *Client) decode(op string, kind error, res *Response, v any) error {
	err := json.Unmarshal(res.Body, v)
	if err == nil && res.OK() {
		return nil
	}
	if err == nil {
		err = fmt.Errorf("unexpected status: %s", errorMessage(res.Body))
	}
	c.log.WithField("status", res.StatusCode).Errorf("[phoenixd] api error response on %s: %s", op, string(res.Body))
	return failure(op, kind, res, err)
}
