// Package adapters defines the collaborator contracts the Tokebi SDK depends
// on (HTTP transport, storage facility, logger, scheduler) together with
// default implementations. Hosts embedding the SDK in an engine or runtime
// with its own HTTP stack, save storage or timer system implement these
// interfaces and pass them through tokebi.Config.
package adapters

// Event is a single analytics occurrence in Tokebi's wire format.
// Payload values must be strings or numbers.
type Event struct {
	EventType   string         `json:"eventType"`
	GameID      string         `json:"gameId"`
	PlayerID    string         `json:"playerId"`
	Platform    string         `json:"platform"`
	Environment string         `json:"environment"`
	SessionID   string         `json:"sessionId,omitempty"`
	Payload     map[string]any `json:"payload"`
	Timestamp   int64          `json:"timestamp"`
}

// HTTPResponse represents the outcome of a completed HTTP request.
type HTTPResponse struct {
	OK     bool
	Status int
	Body   string
}
