// internal/cli/client.go
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// apiClient calls the service's REST API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
}

// apiError is a non-2xx response from the service.
type apiError struct {
	StatusCode int
	Body       errorBody
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Body.Error, e.StatusCode, e.Body.Message)
	}
	return fmt.Sprintf("%s (status %d)", e.Body.Error, e.StatusCode)
}

func (c *apiClient) listRepos(ctx context.Context, page, perPage int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return c.do(ctx, http.MethodGet, "/repos?"+q.Encode())
}

// getRepo escapes the token as one path segment so "owner/repo" survives intact.
func (c *apiClient) getRepo(ctx context.Context, idOrName string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/repos/"+url.PathEscape(idOrName))
}

func (c *apiClient) syncAction(ctx context.Context, action string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/sync/"+action)
	if err != nil {
		return "", err
	}
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &msg); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return msg.Message, nil
}

func (c *apiClient) syncStatus(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/sync/status")
}

func (c *apiClient) do(ctx context.Context, method, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &apiError{StatusCode: resp.StatusCode}
		if json.Unmarshal(body, &apiErr.Body) != nil || apiErr.Body.Error == "" {
			apiErr.Body.Error = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return body, nil
}
