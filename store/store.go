// Package store persists serialized check-in sessions between requests.
package store

import (
	"context"
	"errors"
	"sync"
)

// KeyPrefix namespaces every persisted session.
const KeyPrefix = "checkin-state"

// ErrNotFound is returned when no session is stored under the key.
var ErrNotFound = errors.New("session not found")

// Store saves opaque session blobs by session id.
type Store interface {
	Load(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, data []byte) error
	Delete(ctx context.Context, id string) error
}

// Key returns the storage key of a session.
func Key(id string) string {
	return KeyPrefix + ":" + id
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[Key(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryStore) Save(_ context.Context, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[Key(id)] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, Key(id))
	return nil
}

var _ Store = (*MemoryStore)(nil)
