// Package gateway is the REST client for the hosted site backend. It is a
// direct HTTP client (no SDK dependency): one normalized request path, JSON
// in and out, and error responses folded into a typed error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pixelcraftlabs/site-gateway/internal/config"
)

// defaultErrorMessage is used when an error response carries no message field.
const defaultErrorMessage = "API request failed"

// APIError is a non-2xx response from the backend, carrying the server's
// human-readable message when one was provided.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client issues requests against the hosted backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a gateway client for the given base URL. The URL is sanitized
// the same way the config layer sanitizes environment values, so passing a
// raw env string directly is safe.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    config.SanitizeBaseURL(baseURL),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient creates a gateway client with a caller-supplied
// http.Client, used by tests and by callers needing custom timeouts.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// BaseURL exposes the sanitized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one call against the backend. Endpoint is a path
// relative to the base URL; a missing leading "/" is coerced. Token, Body,
// and Header are all optional.
type Request struct {
	Method   string
	Endpoint string
	Body     any
	Token    string
	Header   http.Header
}

// Do performs the request and returns the raw JSON response body. Non-2xx
// responses become an *APIError whose message is taken from the body's
// "message" field. There are no retries and no caching.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	endpoint := req.Endpoint
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	var bodyReader io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Set(key, v)
		}
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	return json.RawMessage(raw), nil
}

// DoJSON performs the request and decodes the response body into T.
func DoJSON[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T

	raw, err := c.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode gateway response: %w", err)
	}
	return out, nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return defaultErrorMessage
	}
	return body.Message
}
