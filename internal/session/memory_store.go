package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	adminID   uint
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart,
// which is fine for a single instance; use RedisStore when running more than one.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, adminID uint, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = memoryEntry{adminID: adminID, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (uint, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[sessionID]
	if !ok {
		return 0, false, nil
	}
	if !m.now().Before(entry.expiresAt) {
		delete(m.sessions, sessionID)
		return 0, false, nil
	}
	return entry.adminID, true, nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
