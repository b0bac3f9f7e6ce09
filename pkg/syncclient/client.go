// Package syncclient posts the local dataset to the remote sync server.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseSize caps how much of the server reply is read.
const maxResponseSize = 1 << 20

// UploadResponse is the server's verdict. A missing "success" reads as false.
type UploadResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
}

// Client talks to {baseURL}/upload.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client. timeout bounds the whole request.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UploadURL is the endpoint Upload posts to.
func (c *Client) UploadURL() string {
	return c.baseURL + "/upload"
}

// Upload posts payload as JSON. Any error returned is a transport failure:
// the request could not be sent, the server answered with a non-2xx status,
// or the body was not a JSON object.
func (c *Client) Upload(ctx context.Context, payload any) (*UploadResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server responded with HTTP %d", resp.StatusCode)
	}

	var out UploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
