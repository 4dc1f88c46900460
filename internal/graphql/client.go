// Package graphql is a minimal GraphQL-over-HTTP client: one POST per query,
// JSON in and out, with the response error envelope mapped to coded errors.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "filmpicker/internal/errors"
)

// DefaultTimeout bounds a single round trip when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a non-2xx body ends up in an error message.
const maxErrorBody = 512

// request is the JSON body sent to the endpoint.
type request struct {
	Query string `json:"query"`
}

// ResponseError is one entry of the "errors" envelope.
type ResponseError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ResponseError `json:"errors"`
}

// Client posts queries to a single GraphQL endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  strings.TrimSpace(endpoint),
		userAgent: "filmpicker",
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL queries are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query sends query and decodes the "data" member of the response into out.
// out may be nil when the caller only cares about success.
func (c *Client) Query(ctx context.Context, query string, out any) error {
	body, err := json.Marshal(request{Query: query})
	if err != nil {
		return apperrors.New(apperrors.CodeDecode, "encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return apperrors.New(apperrors.CodeConfigurationError, "create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.New(apperrors.CodeNetwork, "graphql request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("graphql endpoint returned status %d", resp.StatusCode)
		if s := strings.TrimSpace(string(snippet)); s != "" {
			msg += ": " + s
		}
		return apperrors.New(apperrors.CodeHTTPStatus, msg, nil)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return apperrors.New(apperrors.CodeDecode, "decode response", err)
	}
	if len(envelope.Errors) > 0 {
		return apperrors.New(apperrors.CodeGraphQL, joinMessages(envelope.Errors), nil)
	}
	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return apperrors.New(apperrors.CodeDecode, "response has no data", nil)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return apperrors.New(apperrors.CodeDecode, "decode data", err)
	}
	return nil
}

func joinMessages(errs []ResponseError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if m := strings.TrimSpace(e.Message); m != "" {
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return "graphql error"
	}
	return "graphql: " + strings.Join(msgs, "; ")
}
