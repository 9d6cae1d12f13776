package blobstore

import (
	"os"
	"sync"
)

// MemoryStorage holds the blob in memory; the production storage for tests
// and throwaway demo sessions.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load implements Storage.
func (m *MemoryStorage) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, false, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, true, nil
}

// Save implements Storage.
func (m *MemoryStorage) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

// FileStorage keeps the blob in a single file, surviving restarts the way
// the browser's key-value store survived page reloads.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed Storage at the given path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load implements Storage.
func (f *FileStorage) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Save implements Storage.
func (f *FileStorage) Save(data []byte) error {
	return os.WriteFile(f.path, data, 0o644)
}
