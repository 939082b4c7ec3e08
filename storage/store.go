// Package storage provides local persistence for accounts, generation
// history and settings.
//
// Information Hiding:
// - Storage backend implementation details hidden behind interfaces
// - Allows swapping between memory and SQLite without API changes
package storage

import (
	"context"
	"errors"

	"github.com/skillsmith/skillsmith/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrUserExists is returned when creating a user whose username is taken.
var ErrUserExists = errors.New("username already taken")

// UserStore persists local accounts.
type UserStore interface {
	// CreateUser stores a new user. Returns ErrUserExists when the username
	// is already taken.
	CreateUser(ctx context.Context, user model.User) error

	// UserByUsername looks a user up by username. Returns ErrNotFound when
	// no such user exists.
	UserByUsername(ctx context.Context, username string) (model.User, error)

	// UserByID looks a user up by ID. Returns ErrNotFound when no such user
	// exists.
	UserByID(ctx context.Context, id string) (model.User, error)
}

// HistoryStore persists generation history. Entries are append-only until
// deleted; there is no versioning of a single entry.
type HistoryStore interface {
	// SaveEntry appends a history entry with its full file set.
	SaveEntry(ctx context.Context, entry model.HistoryEntry) error

	// Entry loads one history entry including its files. Returns ErrNotFound
	// when no such entry exists.
	Entry(ctx context.Context, id string) (model.HistoryEntry, error)

	// List returns a user's history entries, newest first, including files.
	// Returns an empty slice (not nil) when the user has no history.
	List(ctx context.Context, userID string) ([]model.HistoryEntry, error)

	// DeleteEntry removes an entry and its files. Returns ErrNotFound when
	// no such entry exists.
	DeleteEntry(ctx context.Context, id string) error
}

// SettingsStore is a per-user key-value string store.
type SettingsStore interface {
	// SetSetting stores or replaces one setting.
	SetSetting(ctx context.Context, userID, key, value string) error

	// Setting reads one setting. Returns ErrNotFound when unset.
	Setting(ctx context.Context, userID, key string) (string, error)

	// Settings returns all settings for a user. Returns an empty map (not
	// nil) when none are set.
	Settings(ctx context.Context, userID string) (map[string]string, error)
}

// Store combines all persistence concerns behind one handle.
type Store interface {
	UserStore
	HistoryStore
	SettingsStore
	Close() error
}
