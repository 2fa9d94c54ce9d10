// Package client calls the bug tracker REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sumire/bugs/internal/domain"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bug api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("bug api returned status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// DeleteResult is the body returned by a successful delete.
type DeleteResult struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Client talks to a single bug tracker server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API rooted at baseURL, e.g.
// "http://localhost:8080" or "http://localhost:5000/api".
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// List fetches every bug, newest first.
func (c *Client) List(ctx context.Context) ([]domain.Bug, error) {
	var bugs []domain.Bug
	if err := c.do(ctx, http.MethodGet, "/bugs", nil, &bugs); err != nil {
		return nil, fmt.Errorf("fetch bugs: %w", err)
	}
	return bugs, nil
}

// Create reports a new bug.
func (c *Client) Create(ctx context.Context, p domain.BugPayload) (*domain.Bug, error) {
	var bug domain.Bug
	if err := c.do(ctx, http.MethodPost, "/bugs", p, &bug); err != nil {
		return nil, fmt.Errorf("create bug: %w", err)
	}
	return &bug, nil
}

// Update changes the fields present in p.
func (c *Client) Update(ctx context.Context, id string, p domain.BugPayload) (*domain.Bug, error) {
	var bug domain.Bug
	if err := c.do(ctx, http.MethodPut, bugPath(id), p, &bug); err != nil {
		return nil, fmt.Errorf("update bug %s: %w", id, err)
	}
	return &bug, nil
}

// UpdateStatus changes only the status of a bug.
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Bug, error) {
	return c.Update(ctx, id, domain.BugPayload{Status: &status})
}

// Delete removes a bug.
func (c *Client) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	var result DeleteResult
	if err := c.do(ctx, http.MethodDelete, bugPath(id), nil, &result); err != nil {
		return nil, fmt.Errorf("delete bug %s: %w", id, err)
	}
	return &result, nil
}

// bugPath returns the path of a single bug, escaping id as one segment.
func bugPath(id string) string {
	return "/bugs/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Code = errBody.Code
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
