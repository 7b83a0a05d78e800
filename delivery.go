package tokebi

import (
	"encoding/json"
)

// DeliveryResult is the outcome of one asynchronous submission. Success means
// the transport produced an HTTP response; the status says whether the
// backend accepted the batch. Success=false with Status 0 is a transport
// failure (no connectivity).
type DeliveryResult struct {
	Success bool
	Status  int
	Body    string
}

// Accepted reports whether the backend acknowledged the request with a 2xx.
func (r DeliveryResult) Accepted() bool {
	return r.Success && r.Status >= 200 && r.Status < 300
}

// DeliveryClient performs asynchronous POSTs against the configured endpoint.
// It is a pure transport primitive: no timeout and no retry of its own, one
// result per Send, delivered on a buffered channel so the transport goroutine
// never blocks on a slow receiver.
type DeliveryClient struct {
	http     HTTPAdapter
	logger   LoggerAdapter
	endpoint string
	apiKey   string
}

// NewDeliveryClient creates a DeliveryClient for the given endpoint base URL.
func NewDeliveryClient(http HTTPAdapter, logger LoggerAdapter, endpoint, apiKey string) *DeliveryClient {
	return &DeliveryClient{http: http, logger: logger, endpoint: endpoint, apiKey: apiKey}
}

// Send serializes body and POSTs it to path on the configured endpoint,
// returning a channel that yields exactly one DeliveryResult.
func (dc *DeliveryClient) Send(path string, body any) <-chan DeliveryResult {
	ch := make(chan DeliveryResult, 1)

	payload, err := json.Marshal(body)
	if err != nil {
		// Payload values are strings and numbers; this only fires on a
		// programming error in a caller-supplied payload.
		dc.logger.Error("Failed to serialize request body: %v", err)
		ch <- DeliveryResult{}
		return ch
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": dc.apiKey,
	}
	url := dc.endpoint + path

	go func() {
		resp, err := dc.http.Do(url, payload, headers)
		if err != nil {
			dc.logger.Warn("Network error sending to %s: %v", url, err)
			ch <- DeliveryResult{}
			return
		}
		if !resp.OK {
			dc.logger.Warn("Request to %s failed with status %d: %s", url, resp.Status, resp.Body)
		} else {
			dc.logger.Debug("Request to %s completed with status %d", url, resp.Status)
		}
		ch <- DeliveryResult{Success: true, Status: resp.Status, Body: resp.Body}
	}()

	return ch
}
