package store

import (
	"context"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory profile store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: user id
	data map[string]Profile
}

var _ ProfileReader = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore seeded with profiles.
func NewMemoryStore(profiles ...Profile) *MemoryStore {
	s := &MemoryStore{data: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		s.Put(p)
	}
	return s
}

// Put stores p under p.ID, replacing any previous profile.
func (s *MemoryStore) Put(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[p.ID] = cloneProfile(p)
}

// GetProfile returns the profile for id or ErrNotFound.
func (s *MemoryStore) GetProfile(_ context.Context, id string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return cloneProfile(p), nil
}

func cloneProfile(p Profile) Profile {
	if p.SavedCities != nil {
		saved := make(map[string]string, len(p.SavedCities))
		for k, v := range p.SavedCities {
			saved[k] = v
		}
		p.SavedCities = saved
	}
	return p
}
