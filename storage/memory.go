// In-memory Store.
//
// Information Hiding:
// - Same interfaces as SQLite, backed by maps
// - Useful for tests and ephemeral runs; nothing survives the process

package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/skillsmith/skillsmith/model"
)

// MemoryStore implements Store with in-process maps.
// Thread-safe via an internal mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]model.User         // by ID
	entries  map[string]model.HistoryEntry // by ID
	settings map[string]map[string]string  // userID -> key -> value
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]model.User),
		entries:  make(map[string]model.HistoryEntry),
		settings: make(map[string]map[string]string),
	}
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// CreateUser stores a new user.
func (s *MemoryStore) CreateUser(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return ErrUserExists
		}
	}
	s.users[user.ID] = user
	return nil
}

// UserByUsername looks a user up by username.
func (s *MemoryStore) UserByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, ErrNotFound
}

// UserByID looks a user up by ID.
func (s *MemoryStore) UserByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return user, nil
}

// SaveEntry appends a history entry.
func (s *MemoryStore) SaveEntry(_ context.Context, entry model.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.ID] = entry
	return nil
}

// Entry loads one history entry.
func (s *MemoryStore) Entry(_ context.Context, id string) (model.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return model.HistoryEntry{}, ErrNotFound
	}
	return entry, nil
}

// List returns a user's history entries, newest first.
func (s *MemoryStore) List(_ context.Context, userID string) ([]model.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []model.HistoryEntry{}
	for _, entry := range s.entries {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// DeleteEntry removes an entry.
func (s *MemoryStore) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// SetSetting stores or replaces one setting.
func (s *MemoryStore) SetSetting(_ context.Context, userID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings[userID] == nil {
		s.settings[userID] = make(map[string]string)
	}
	s.settings[userID][key] = value
	return nil
}

// Setting reads one setting.
func (s *MemoryStore) Setting(_ context.Context, userID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.settings[userID][key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Settings returns all settings for a user.
func (s *MemoryStore) Settings(_ context.Context, userID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := map[string]string{}
	for key, value := range s.settings[userID] {
		settings[key] = value
	}
	return settings, nil
}

// Verify MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
