package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/paymentrails/paymentrails-go/internal/auth"
	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
)

// Request describes a single API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response holds a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport shared by every resource client.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	signer     auth.Signer
	logger     paymentrails.Logger
	debug      bool
	userAgent  string
	metrics    *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output and transport warnings.
func WithLogger(logger paymentrails.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		if logger != nil {
			c.httpClient.Logger = leveledLogger{logger: logger}
		}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client, e.g. to install a custom transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// WithMetrics records request counts and latencies on metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient creates a transport for baseURL. A nil signer sends unsigned requests.
func NewClient(baseURL string, signer auth.Signer, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient,
		signer:     signer,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req and returns the response. For non-2xx statuses it returns both
// the response and a *paymentrails.ResponseError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, paymentrails.ErrRequestNil
	}

	fullURL, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var (
		body    []byte
		rawBody interface{}
	)

	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.signer != nil {
		err = c.signer.Sign(httpReq.Request, body)
		if err != nil {
			return nil, fmt.Errorf("signing request: %w", err)
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"body":   string(body),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		c.metrics.observe(req.Method, statusLabel(ctx, err), time.Since(start))

		return nil, transportError(ctx, req, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.metrics.observe(req.Method, statusLabel(ctx, err), time.Since(start))

		return nil, transportError(ctx, req, fmt.Errorf("reading response body: %w", err))
	}

	duration := time.Since(start)
	c.metrics.observe(req.Method, strconv.Itoa(httpResp.StatusCode), duration)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": duration.String(),
			"body":     string(respBody),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, paymentrails.NewResponseError(httpResp.StatusCode, respBody)
	}

	return resp, nil
}

// Send issues method on path with an optional JSON body.
func (c *Client) Send(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: method,
		Path:   path,
		Body:   body,
	})
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Send(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Send(ctx, http.MethodPut, path, body)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Send(ctx, http.MethodPatch, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Send(ctx, http.MethodDelete, path, nil)
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	parsed, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	if len(query) > 0 {
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

// checkRetry never retries. It surfaces context errors so callers see why a request stopped.
func checkRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

func transportError(ctx context.Context, req *Request, err error) error {
	if isTimeout(ctx, err) {
		return fmt.Errorf("%w: %s %s: %w", paymentrails.ErrNetworkTimeout, req.Method, req.Path, err)
	}

	return fmt.Errorf("executing %s %s: %w", req.Method, req.Path, err)
}

func statusLabel(ctx context.Context, err error) string {
	if isTimeout(ctx, err) {
		return "timeout"
	}

	return "error"
}
