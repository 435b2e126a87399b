package storage

import (
	"context"
	"sync"

	"employee-stats/models"
)

// MemoryResultStore keeps session results in process memory.
// It is safe for concurrent use.
type MemoryResultStore struct {
	mu       sync.RWMutex
	results  map[string]*models.SessionResult
	inFlight map[string]string
}

// NewMemoryResultStore creates an empty MemoryResultStore.
func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{
		results:  make(map[string]*models.SessionResult),
		inFlight: make(map[string]string),
	}
}

func (m *MemoryResultStore) Save(_ context.Context, result *models.SessionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.SessionID] = result
	return nil
}

func (m *MemoryResultStore) Load(_ context.Context, sessionID string) (*models.SessionResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[sessionID]
	if !ok {
		return nil, ErrResultNotFound
	}
	return r, nil
}

func (m *MemoryResultStore) TryLock(_ context.Context, sessionID, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inFlight[sessionID]; busy {
		return false, nil
	}
	m.inFlight[sessionID] = token
	return true, nil
}

func (m *MemoryResultStore) Unlock(_ context.Context, sessionID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[sessionID] == token {
		delete(m.inFlight, sessionID)
	}
	return nil
}

func (m *MemoryResultStore) Close() error {
	return nil
}
