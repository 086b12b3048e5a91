package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Processor defines the operations the relay client exposes. It is
// implemented by *Client and can be used for testing.
type Processor interface {
	Process(ctx context.Context, req Request) (*Response, error)
	Download(ctx context.Context, tunnelURL string) ([]byte, error)
	Fetch(ctx context.Context, req Request) (*Response, []byte, error)
	FetchInstanceInfo(ctx context.Context) (*InstanceInfo, error)
}

// Ensure Client implements Processor at compile time.
var _ Processor = (*Client)(nil)

// Client talks to a media relay instance. It is immutable after New and safe
// for concurrent use. No timeout or retry is applied internally; callers
// bound each operation through ctx, since some sources stall for a long time.
type Client struct {
	baseURL   string
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	authScheme       = "Api-Key"
	defaultUserAgent = "tidepool/0.1"
)

// Option customizes a Client at construction time.
type Option func(*Client)

// WithAPIKey attaches "Authorization: Api-Key <key>" to processing calls.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = strings.TrimSpace(key) }
}

// WithHTTPClient substitutes the underlying transport, mainly for tests and
// for callers that need proxies or timeouts.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(ua); trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// New builds a Client for the instance at baseURL. A missing scheme defaults
// to https; exactly one trailing slash is stripped so request URLs never
// carry a doubled separator.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	c := &Client{
		baseURL:   strings.TrimSuffix(trimmed, "/"),
		http:      http.DefaultClient,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Process submits req to the instance and interprets the tagged response.
// An error-variant payload fails the call even when the HTTP status is 200.
func (c *Client) Process(ctx context.Context, req Request) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	resp, err := c.process(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("process request: %w", err)
	}
	return resp, nil
}

func (c *Client) process(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", authScheme+" "+c.apiKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return interpret(httpResp.StatusCode, raw)
}

// interpret applies the response contract to a raw transport result:
//
//  1. Undecodable body: a failing HTTP status wins as the more actionable
//     diagnostic; on a 2xx the decode error itself is surfaced.
//  2. A decoded error variant fails the call regardless of HTTP status.
//  3. A decoded non-error variant on a failing status is still rejected.
//  4. Otherwise the variant is returned unmodified.
func interpret(status int, body []byte) (*Response, error) {
	var decoded Response
	if err := json.Unmarshal(body, &decoded); err != nil {
		if !success(status) {
			return nil, &HTTPStatusError{Code: status}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Status == StatusError {
		reqErr := &RequestError{}
		if decoded.Error != nil {
			reqErr.Code = decoded.Error.Code
			reqErr.Context = decoded.Error.Context
		}
		return nil, reqErr
	}
	if !success(status) {
		return nil, &HTTPStatusError{Code: status}
	}
	return &decoded, nil
}

// Download retrieves the raw bytes behind a tunnel URL. The request carries
// no Authorization header; tunnel URLs are self-authorizing and short-lived.
// Any byte sequence is a valid payload.
func (c *Client) Download(ctx context.Context, tunnelURL string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	data, err := c.download(ctx, tunnelURL)
	if err != nil {
		return nil, fmt.Errorf("download tunnel: %w", err)
	}
	return data, nil
}

func (c *Client) download(ctx context.Context, tunnelURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, tunnelURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if !success(httpResp.StatusCode) {
		return nil, &HTTPStatusError{Code: httpResp.StatusCode}
	}
	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// Fetch runs Process and, only for tunnel and redirect variants, downloads
// the carried URL in a second round-trip. All other variants return with a
// nil payload and no extra network call.
func (c *Client) Fetch(ctx context.Context, req Request) (*Response, []byte, error) {
	resp, err := c.Process(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	switch resp.Status {
	case StatusTunnel, StatusRedirect:
		data, err := c.Download(ctx, resp.Tunnel.URL)
		if err != nil {
			return resp, nil, err
		}
		return resp, data, nil
	}
	return resp, nil, nil
}

// FetchInstanceInfo retrieves version and capability information from
// GET /. The request is never authenticated, even when an API key is set.
func (c *Client) FetchInstanceInfo(ctx context.Context) (*InstanceInfo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	info, err := c.fetchInstanceInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch instance info: %w", err)
	}
	return info, nil
}

func (c *Client) fetchInstanceInfo(ctx context.Context) (*InstanceInfo, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if !success(httpResp.StatusCode) {
		return nil, &HTTPStatusError{Code: httpResp.StatusCode}
	}
	var info InstanceInfo
	if err := json.NewDecoder(httpResp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &info, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}
