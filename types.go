// Package tokebi is the Tokebi analytics client SDK: it accepts events from
// any goroutine, batches them, and delivers them to the Tokebi backend with
// at-least-once semantics across network failures and process restarts.
package tokebi

import (
	"errors"

	"github.com/tokebi-analytics/tokebi-go/adapters"
)

// Re-export adapter types for convenience
type (
	Event            = adapters.Event
	HTTPAdapter      = adapters.HTTPAdapter
	HTTPResponse     = adapters.HTTPResponse
	StorageAdapter   = adapters.StorageAdapter
	LoggerAdapter    = adapters.LoggerAdapter
	LogLevel         = adapters.LogLevel
	SchedulerAdapter = adapters.SchedulerAdapter
)

var (
	// ErrNotConfigured is returned when the API key or game id is missing.
	// Events recorded in this state are dropped, never queued.
	ErrNotConfigured = errors.New("tokebi: API key and game ID must be configured")

	// ErrNotInitialized is returned when the client is used before Init.
	ErrNotInitialized = errors.New("tokebi: client not initialized, call Init first")
)

// Storage keys, shared with the Tokebi plugins for other engines so an
// upgraded installation keeps its player identity and pending events.
const (
	playerIDKey      = "Analytics/TokebiPlayerID.txt"
	offlineEventsKey = "Analytics/TokebiOfflineEvents.json"
)

// Wire paths on the configured endpoint.
const (
	trackPath    = "/api/track"
	registerPath = "/api/games"
)

// trackBatch is the body of a POST /api/track request.
type trackBatch struct {
	Events []Event `json:"events"`
}
