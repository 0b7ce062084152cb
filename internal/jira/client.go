package jira

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// REST paths, version-pinned.
const (
	searchPath     = "/rest/api/2/search"
	issuePath      = "/rest/api/2/issue"
	createMetaPath = "/rest/api/2/issue/createmeta"
	fieldMetaPath  = "/rest/api/3/issue/createmeta" // + /{project}/issuetypes/{id}
	boardPath      = "/rest/agile/1.0/board"
)

// Client handles communication with the Jira REST API.
type Client struct {
	BaseURL *url.URL     // Site base URL (e.g. https://example.atlassian.net)
	Client  *http.Client // Underlying HTTP client
	logger  *slog.Logger
	auth    AuthFunc
}

// NewClient returns a Jira client for the given site URL and authentication function.
func NewClient(baseURL *url.URL, auth AuthFunc, logger *slog.Logger, skipVerify bool, timeout time.Duration) *Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipVerify,
		},
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Transport: tr, Timeout: timeout},
		logger:  logger,
		auth:    auth,
	}
}

// Get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, query, nil, out)
}

// Post serializes body as JSON, performs an authenticated POST and
// decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, body, out)
}

// doRequest performs an authenticated HTTP request. A non-2xx response
// is returned as *APIError carrying status and body.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	relURL, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path: %w", err)
	}
	if query != nil {
		relURL.RawQuery = query.Encode()
	}
	fullURL := c.BaseURL.ResolveReference(relURL).String()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.auth(req) // apply authentication

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("jira request", "method", method, "url", fullURL)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// BrowseURL returns the browsable URL for an issue key.
func (c *Client) BrowseURL(key string) string {
	rel := &url.URL{Path: "/browse/" + key}
	return c.BaseURL.ResolveReference(rel).String()
}
