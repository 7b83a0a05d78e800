package adapters

import (
	"os"
	"path/filepath"
)

// FileStorageAdapter is the default storage adapter implementation using the
// file system. Each key maps to a file under the base directory, so the
// on-disk layout matches what the Tokebi plugins for other engines produce
// (e.g. Analytics/TokebiOfflineEvents.json).
type FileStorageAdapter struct {
	baseDir string
}

// Ensure FileStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*FileStorageAdapter)(nil)

// NewFileStorageAdapter creates a new FileStorageAdapter rooted at baseDir.
// The directory is created lazily on first write.
func NewFileStorageAdapter(baseDir string) StorageAdapter {
	return &FileStorageAdapter{baseDir: baseDir}
}

func (f *FileStorageAdapter) path(key string) string {
	return filepath.Join(f.baseDir, filepath.FromSlash(key))
}

// Read returns the file contents for key, or ErrNotFound.
func (f *FileStorageAdapter) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write stores data in the file for key, creating parent directories as
// needed.
func (f *FileStorageAdapter) Write(key string, data []byte) error {
	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Delete removes the file for key. A missing file is not an error.
func (f *FileStorageAdapter) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
