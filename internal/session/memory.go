package session

import (
	"context"
	"time"

	"github.com/randytsao24/verdigo/internal/cache"
	"github.com/randytsao24/verdigo/internal/planner"
)

// MemoryStore keeps sessions in process
type MemoryStore struct {
	cache *cache.Cache[*planner.Session]
}

// NewMemoryStore creates a store whose sessions expire after ttl
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New[*planner.Session](ttl)}
}

func (m *MemoryStore) Save(_ context.Context, s *planner.Session) error {
	m.cache.Set(s.ID, clone(s))
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*planner.Session, error) {
	s, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return clone(s), nil
}

// Len counts live sessions
func (m *MemoryStore) Len() int {
	return m.cache.Len()
}

// Close stops the expiry sweeper
func (m *MemoryStore) Close() error {
	m.cache.Close()
	return nil
}
