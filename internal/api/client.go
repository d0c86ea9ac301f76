package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client talks to the platform's REST backend. All calls are plain
// request/response; the real-time channels live in internal/transport.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		logger:  logger,
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: newLoggingTransport(http.DefaultTransport),
		},
	}
}

// request performs one call. authToken is sent as the Authorization header
// when non-empty; body is JSON-encoded when non-nil; out is decoded from a
// 2xx response body when non-nil. Non-2xx statuses become *Error.
func (c *Client) request(ctx context.Context, method, path, authToken string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var remote apiErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&remote); err == nil && remote.Message != "" {
			apiErr.Message = remote.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decode %s response: %w", path, err)
		}
	}
	return nil
}
