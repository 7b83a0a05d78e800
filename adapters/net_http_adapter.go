package adapters

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// NetHTTPAdapter is the standard HTTP adapter implementation using net/http.
type NetHTTPAdapter struct {
	client *http.Client
}

// Ensure NetHTTPAdapter implements HTTPAdapter interface
var _ HTTPAdapter = (*NetHTTPAdapter)(nil)

// NewNetHTTPAdapter creates a new NetHTTPAdapter instance.
func NewNetHTTPAdapter() HTTPAdapter {
	return &NetHTTPAdapter{
		client: &http.Client{},
	}
}

// NewNetHTTPAdapterWithClient creates a NetHTTPAdapter around a caller-owned
// http.Client, for hosts that need custom transports or timeouts.
func NewNetHTTPAdapterWithClient(client *http.Client) HTTPAdapter {
	return &NetHTTPAdapter{client: client}
}

// Do sends the body to the given URL with the given headers.
func (h *NetHTTPAdapter) Do(url string, body []byte, headers map[string]string) (*HTTPResponse, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &HTTPResponse{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		Body:   string(respBody),
	}, nil
}
