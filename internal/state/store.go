// Package state is the per-identity client-state cache: the server-side
// home for everything the original UI scattered across browser storage.
// Call sites never touch the backing store directly; they go through the
// reconciler services built on top of this interface.
package state

import (
	"context"
	"encoding/json"
	"sync"
)

// Namespaces for cached records, one per kind of client state.
const (
	NSProfile   = "profile"
	NSSettings  = "settings"
	NSRewards   = "rewards"
	NSRideDraft = "ride-draft"
	NSUIState   = "ui-state"
)

// Store is a namespaced key/value cache keyed by identity. Get returns
// ok=false when nothing has been written yet.
type Store interface {
	Get(ctx context.Context, identityKey, namespace string) ([]byte, bool, error)
	Put(ctx context.Context, identityKey, namespace string, value []byte) error
	Delete(ctx context.Context, identityKey, namespace string) error
}

// GetJSON decodes the cached record into out. Returns ok=false and leaves
// out untouched when the record does not exist.
func GetJSON(ctx context.Context, s Store, identityKey, namespace string, out interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, identityKey, namespace)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// PutJSON encodes value and stores it.
func PutJSON(ctx context.Context, s Store, identityKey, namespace string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Put(ctx, identityKey, namespace, raw)
}

// MemStore is the in-memory Store used by tests and single-process
// development runs.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func memKey(identityKey, namespace string) string {
	return identityKey + "/" + namespace
}

func (m *MemStore) Get(ctx context.Context, identityKey, namespace string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[memKey(identityKey, namespace)]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true, nil
}

func (m *MemStore) Put(ctx context.Context, identityKey, namespace string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[memKey(identityKey, namespace)] = cp
	return nil
}

func (m *MemStore) Delete(ctx context.Context, identityKey, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, memKey(identityKey, namespace))
	return nil
}
