package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apierrors "github.com/milan604/api-handler/pkg/errors"
	"github.com/milan604/api-handler/pkg/logger"
	"github.com/milan604/api-handler/pkg/observability"
	"github.com/milan604/api-handler/pkg/token"
)

const tracerName = "github.com/milan604/api-handler/pkg/http"

// Client issues REST calls with a bearer token, merged headers, and
// JSON-or-binary response decoding. It performs exactly one round trip per
// call and never retries.
type Client struct {
	httpClient    *http.Client
	tokens        token.Reader
	logger        logger.LogManager
	metrics       *Metrics
	tracer        trace.Tracer
	requestHooks  []RequestHook
	responseHooks []ResponseHook
}

// RequestHook is a function that can modify a request before it's sent.
type RequestHook func(*http.Request) error

// ResponseHook is a function that can inspect a response before it's decoded.
type ResponseHook func(*http.Response) error

// ClientOption configures the HTTP client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTokenStore sets where the credential is read when a request carries no
// explicit access token.
func WithTokenStore(r token.Reader) ClientOption {
	return func(c *Client) {
		c.tokens = r
	}
}

// WithLogger sets a logger for the client.
func WithLogger(l logger.LogManager) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(t trace.Tracer) ClientOption {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithRequestHook adds a hook that runs before each request.
func WithRequestHook(hook RequestHook) ClientOption {
	return func(c *Client) {
		c.requestHooks = append(c.requestHooks, hook)
	}
}

// WithResponseHook adds a hook that runs after each response.
func WithResponseHook(hook ResponseHook) ClientOption {
	return func(c *Client) {
		c.responseHooks = append(c.responseHooks, hook)
	}
}

// NewClient creates a new HTTP client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}

	return c
}

// Invoke performs the request described by opts.
//
// Any failure, whether building the request, reaching the server, a non-2xx
// status or an undecodable body, is returned as a *errors.StructuredError
// with code NETWORK_ERROR whose Details hold the original failure.
func (c *Client) Invoke(ctx context.Context, opts RequestOptions) (*Response, error) {
	opts = opts.withDefaults()
	ctx = logger.WithRequestID(ctx, uuid.NewString())

	ctx, span := c.tracer.Start(ctx, "apihandler.invoke",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.AttrHTTPMethod.String(opts.Method),
			observability.AttrHTTPURL.String(opts.URL),
		),
	)
	defer span.End()

	done := c.metrics.start(opts.Method)
	resp, err := c.invoke(ctx, opts)
	done(err)

	if err != nil {
		se := apierrors.Network(err)
		observability.RecordSpanError(ctx, se)
		c.logFailure(ctx, se)
		return nil, se
	}

	observability.AddSpanAttributes(ctx, observability.AttrHTTPStatusCode.Int(resp.StatusCode))
	return resp, nil
}

func (c *Client) invoke(ctx context.Context, opts RequestOptions) (*Response, error) {
	req, err := c.newRequest(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := c.applyRequestHooks(req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.applyResponseHooks(resp); err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apierrors.StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return decodeResponse(resp, opts.FileType)
}

// newRequest builds the outgoing request. Only POST and PATCH carry a body.
func (c *Client) newRequest(ctx context.Context, opts RequestOptions) (*http.Request, error) {
	var body io.Reader
	if carriesBody(opts.Method) {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, apierrors.Wrap(err, apierrors.StageMarshal)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.completeURL(), body)
	if err != nil {
		return nil, err
	}

	req.Header = opts.mergedHeaders(c.credential(opts))
	// net/http ignores Header["Host"] on outgoing requests.
	if host, ok := opts.Headers["Host"]; ok {
		req.Host = host
	}
	return req, nil
}

// credential resolves the bearer value at call time.
func (c *Client) credential(opts RequestOptions) string {
	if opts.AccessToken != nil {
		return *opts.AccessToken
	}
	if c.tokens != nil {
		if v, ok := c.tokens.Get(); ok {
			return v
		}
	}
	return AbsentCredential
}

// applyRequestHooks applies all request hooks.
func (c *Client) applyRequestHooks(req *http.Request) error {
	for _, hook := range c.requestHooks {
		if err := hook(req); err != nil {
			return fmt.Errorf("request hook failed: %w", err)
		}
	}
	return nil
}

// applyResponseHooks applies all response hooks.
func (c *Client) applyResponseHooks(resp *http.Response) error {
	for _, hook := range c.responseHooks {
		if err := hook(resp); err != nil {
			return fmt.Errorf("response hook failed: %w", err)
		}
	}
	return nil
}

// logFailure must never stand in the way of returning err.
func (c *Client) logFailure(ctx context.Context, err *apierrors.StructuredError) {
	if c.logger == nil {
		return
	}
	defer func() { _ = recover() }()
	c.logger.ErrorFCtx(ctx, "error occurred while fetching data: %v", err.Details)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.Invoke(ctx, NewRequestOptions(url, http.MethodGet, opts...))
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, url string, body any, opts ...RequestOption) (*Response, error) {
	return c.Invoke(ctx, NewRequestOptions(url, http.MethodPost, append([]RequestOption{WithBody(body)}, opts...)...))
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, url string, body any, opts ...RequestOption) (*Response, error) {
	return c.Invoke(ctx, NewRequestOptions(url, http.MethodPatch, append([]RequestOption{WithBody(body)}, opts...)...))
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts ...RequestOption) (*Response, error) {
	return c.Invoke(ctx, NewRequestOptions(url, http.MethodDelete, opts...))
}
