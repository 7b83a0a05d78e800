package tokebi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tokebi-analytics/tokebi-go/adapters"
)

// IdentityManager produces the durable per-installation player ID and fresh
// per-session IDs. Both formats are part of the wire contract:
// player_<unixSeconds>_<8 chars> and session_<unixSeconds>_<8 chars>.
type IdentityManager struct {
	storage StorageAdapter
	logger  LoggerAdapter
	clock   Clock
}

// NewIdentityManager creates an IdentityManager backed by the given storage.
func NewIdentityManager(storage StorageAdapter, logger LoggerAdapter, clock Clock) *IdentityManager {
	return &IdentityManager{storage: storage, logger: logger, clock: clock}
}

// GetOrCreatePlayerID returns the persisted player ID, generating and
// persisting a new one if none exists. The stored value is trimmed of
// whitespace; an empty file counts as absent.
func (im *IdentityManager) GetOrCreatePlayerID() (string, error) {
	data, err := im.storage.Read(playerIDKey)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			im.logger.Debug("Loaded existing player ID: %s", id)
			return id, nil
		}
	} else if !errors.Is(err, adapters.ErrNotFound) {
		return "", fmt.Errorf("read player ID: %w", err)
	}

	id := fmt.Sprintf("player_%d_%s", im.clock.Now().Unix(), randomSuffix())
	if err := im.storage.Write(playerIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("persist player ID: %w", err)
	}
	im.logger.Info("Generated new player ID: %s", id)
	return id, nil
}

// NewSessionID generates a fresh session ID. Not persisted; uniqueness rests
// on the timestamp plus the random suffix.
func (im *IdentityManager) NewSessionID() string {
	return fmt.Sprintf("session_%d_%s", im.clock.Now().Unix(), randomSuffix())
}

// randomSuffix returns the last 8 hex digits of a random UUID, matching the
// suffix the other Tokebi plugins generate.
func randomSuffix() string {
	id := uuid.New()
	hex := strings.ReplaceAll(id.String(), "-", "")
	return hex[len(hex)-8:]
}
