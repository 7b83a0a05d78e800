package adapters

import "errors"

// ErrNotFound is returned by StorageAdapter.Read when the key has never been
// written. Absence is a normal condition (first run, nothing pending) and
// callers treat it as empty rather than failing.
var ErrNotFound = errors.New("storage: key not found")

// StorageAdapter is the persistent storage facility supplied by the host.
// The SDK stores small keyed blobs through it: the durable player identity
// and the offline event buffer. Keys are slash-separated relative paths.
//
// Implement this interface to back the SDK with an engine's save system or a
// platform keychain instead of the default file layout.
type StorageAdapter interface {
	// Read returns the blob stored under key, or ErrNotFound.
	Read(key string) ([]byte, error)
	// Write stores the blob under key, replacing any previous value.
	Write(key string, data []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}
