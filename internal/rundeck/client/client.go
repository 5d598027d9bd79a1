// Package client implements the authenticated HTTP transport to the Rundeck
// API. It owns request formatting, authentication and error surfacing;
// interpreting the returned JSON is the mapping layer's job.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ehsaniara/rundeck-mcp/pkg/config"
	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
	"github.com/ehsaniara/rundeck-mcp/pkg/logger"
	"github.com/ehsaniara/rundeck-mcp/pkg/version"
)

// maxErrorBody caps how much of a failed response body is carried in a
// TransportError.
const maxErrorBody = 4096

// Client is an authenticated HTTP client for one Rundeck instance. It is
// stateless apart from the immutable connection settings and safe for
// concurrent use.
type Client struct {
	baseURL    string
	apiVersion int
	apiToken   string
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates a client from the resolved configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.WithField("component", "rundeck-client"),
	}
}

// BaseURL returns the configured server URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIVersion returns the configured API version.
func (c *Client) APIVersion() int {
	return c.apiVersion
}

// Get performs an authenticated GET and returns the raw JSON body.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post performs an authenticated POST with a JSON body and returns the raw
// JSON response body. A nil body posts an empty JSON object.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	if body == nil {
		body = map[string]any{}
	}
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, params map[string]string, body any) (json.RawMessage, error) {
	op := fmt.Sprintf("%s %s", method, path)

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapTransportError(op, fmt.Errorf("encode request body: %w", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reqBody)
	if err != nil {
		return nil, errors.WrapTransportError(op, err)
	}
	req.Header.Set("X-Rundeck-Auth-Token", c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("rundeck api call", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapTransportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapTransportError(op, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(data)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, errors.NewTransportError(op, resp.StatusCode, snippet)
	}

	if !json.Valid(data) {
		return nil, errors.WrapTransportError(op, fmt.Errorf("response is not valid JSON"))
	}
	return data, nil
}

// url builds the full request URL. Paths that already carry an /api/ prefix
// pass through unchanged, everything else gets the versioned prefix.
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "/api/") {
		return c.baseURL + path
	}
	return fmt.Sprintf("%s/api/%d%s", c.baseURL, c.apiVersion, path)
}

// WithHTTPClient swaps the underlying *http.Client. Exposed for tests that
// need a custom transport or timeout.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithTimeout overrides the request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.httpClient.Timeout = d
	return c
}
