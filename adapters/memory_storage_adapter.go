package adapters

import "sync"

// MemoryStorageAdapter keeps blobs in process memory. Identity and offline
// events do not survive a restart, so it is suited to tests and to hosts
// without a writable filesystem that accept losing pending events.
type MemoryStorageAdapter struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

var _ StorageAdapter = (*MemoryStorageAdapter)(nil)

// NewMemoryStorageAdapter creates an empty in-memory storage adapter.
func NewMemoryStorageAdapter() *MemoryStorageAdapter {
	return &MemoryStorageAdapter{blobs: make(map[string][]byte)}
}

func (m *MemoryStorageAdapter) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryStorageAdapter) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[key] = stored
	return nil
}

func (m *MemoryStorageAdapter) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Len reports how many keys are stored.
func (m *MemoryStorageAdapter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
