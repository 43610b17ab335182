package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/Skotchmaster/storefront/internal/logging"
)

// Client is a thin JSON client for the storefront backend. Every call is a
// single attempt: no retries, no caching, and no timeout beyond the caller's
// context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client. The replacement should carry a
// cookie jar if guest carts are expected to survive between calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.httpClient = &http.Client{
			Jar: jar,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type Options struct {
	Method string
	Body   any
	Token  string
	Query  url.Values
}

// Do sends one request to endpoint (relative to the base URL) and decodes a
// successful JSON response into out. out may be nil when the response body is
// irrelevant. Non-2xx responses are returned as *APIError.
func (c *Client) Do(ctx context.Context, endpoint string, opts Options, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + endpoint
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if opts.Token != "" {
		req.Header.Set("Authorization", "Token "+opts.Token)
	}

	l := logging.FromContext(ctx).With("method", method, "endpoint", endpoint)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		l.Warn("api_request_error", "error", err)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	l.Debug("api_request", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Fetch is Do with the response decoded into a freshly allocated T.
func Fetch[T any](ctx context.Context, c *Client, endpoint string, opts Options) (*T, error) {
	var out T
	if err := c.Do(ctx, endpoint, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
