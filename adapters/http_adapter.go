package adapters

// HTTPAdapter is an interface for HTTP communication.
// Implement this interface to use a custom HTTP client.
//
// Do performs a single synchronous POST and returns the response, or an error
// for transport-level failures (no connectivity, DNS, TLS). A non-2xx status
// is not an error at this layer; callers inspect HTTPResponse.OK. The adapter
// must not retry — retry policy belongs to the pipeline.
type HTTPAdapter interface {
	// Do sends body to the given URL with the given headers.
	Do(url string, body []byte, headers map[string]string) (*HTTPResponse, error)
}
