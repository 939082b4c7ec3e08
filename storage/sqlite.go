// SQLite-backed Store.
//
// Information Hiding:
// - SQLite connection management hidden behind the Store interfaces
// - Schema and migration details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skillsmith/skillsmith/model"
)

// SqliteStore implements Store using SQLite.
// Thread-safe: sql.DB handles connection pooling and concurrent access.
type SqliteStore struct {
	db *sql.DB
}

// OpenSqlite opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func OpenSqlite(path string) (*SqliteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// NewSqliteInMemory creates an in-memory database (useful for testing).
func NewSqliteInMemory() (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}
	// Each pooled connection gets its own :memory: database.
	db.SetMaxOpenConns(1)

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS generations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			idea TEXT NOT NULL,
			skill_name TEXT NOT NULL DEFAULT '',
			manifest_name TEXT,
			manifest_root TEXT,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_generations_user
		ON generations(user_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS generation_files (
			generation_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			language TEXT NOT NULL,
			content TEXT NOT NULL,
			PRIMARY KEY (generation_id, position),
			FOREIGN KEY (generation_id) REFERENCES generations(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS settings (
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (user_id, key)
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// CreateUser stores a new user.
func (s *SqliteStore) CreateUser(ctx context.Context, user model.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Username, user.PasswordHash, user.CreatedAt.Unix(),
	)
	if err != nil {
		var exists int
		row := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE username = ?", user.Username)
		if scanErr := row.Scan(&exists); scanErr == nil && exists > 0 {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UserByUsername looks a user up by username.
func (s *SqliteStore) UserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username))
}

// UserByID looks a user up by ID.
func (s *SqliteStore) UserByID(ctx context.Context, id string) (model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id))
}

func (s *SqliteStore) scanUser(row *sql.Row) (model.User, error) {
	var user model.User
	var createdAt int64
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return user, nil
}

// SaveEntry appends a history entry with its full file set.
func (s *SqliteStore) SaveEntry(ctx context.Context, entry model.HistoryEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op after Commit.
	defer func() { _ = tx.Rollback() }()

	var manifestName, manifestRoot sql.NullString
	if m := entry.Result.Manifest; m != nil {
		manifestName = sql.NullString{String: m.Name, Valid: true}
		manifestRoot = sql.NullString{String: m.RootStructure, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO generations (id, user_id, idea, skill_name, manifest_name, manifest_root, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Idea, entry.SkillName, manifestName, manifestRoot, entry.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert generation: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO generation_files (generation_id, position, path, language, content) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range entry.Result.Files {
		if _, err := stmt.ExecContext(ctx, entry.ID, i, f.Path, f.Language, f.Content); err != nil {
			return fmt.Errorf("failed to insert file %q: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Entry loads one history entry including its files.
func (s *SqliteStore) Entry(ctx context.Context, id string) (model.HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, idea, skill_name, manifest_name, manifest_root, created_at
		 FROM generations WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err != nil {
		return model.HistoryEntry{}, err
	}

	files, err := s.loadFiles(ctx, entry.ID)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	entry.Result.Files = files
	return entry, nil
}

// List returns a user's history entries, newest first.
func (s *SqliteStore) List(ctx context.Context, userID string) ([]model.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, idea, skill_name, manifest_name, manifest_root, created_at
		 FROM generations WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generations: %w", err)
	}

	for i := range entries {
		files, err := s.loadFiles(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Result.Files = files
	}
	return entries, nil
}

// DeleteEntry removes an entry and its files.
func (s *SqliteStore) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM generations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete generation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	// Files may linger when foreign keys are off; remove them explicitly.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM generation_files WHERE generation_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete generation files: %w", err)
	}
	return nil
}

// SetSetting stores or replaces one setting.
func (s *SqliteStore) SetSetting(ctx context.Context, userID, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value`,
		userID, key, value)
	if err != nil {
		return fmt.Errorf("failed to store setting: %w", err)
	}
	return nil
}

// Setting reads one setting.
func (s *SqliteStore) Setting(ctx context.Context, userID, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE user_id = ? AND key = ?", userID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load setting: %w", err)
	}
	return value, nil
}

// Settings returns all settings for a user.
func (s *SqliteStore) Settings(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM settings WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}
	return settings, nil
}

func (s *SqliteStore) loadFiles(ctx context.Context, generationID string) ([]model.GeneratedFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, language, content FROM generation_files
		 WHERE generation_id = ? ORDER BY position`, generationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load files: %w", err)
	}
	defer rows.Close()

	var files []model.GeneratedFile
	for rows.Next() {
		var f model.GeneratedFile
		if err := rows.Scan(&f.Path, &f.Language, &f.Content); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate files: %w", err)
	}
	return files, nil
}

// rowScanner abstracts sql.Row and sql.Rows for entry scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.HistoryEntry, error) {
	var entry model.HistoryEntry
	var manifestName, manifestRoot sql.NullString
	var createdAt int64

	err := row.Scan(&entry.ID, &entry.UserID, &entry.Idea, &entry.SkillName,
		&manifestName, &manifestRoot, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.HistoryEntry{}, ErrNotFound
	}
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("failed to load generation: %w", err)
	}

	if manifestName.Valid || manifestRoot.Valid {
		entry.Result.Manifest = &model.Manifest{
			Name:          manifestName.String,
			RootStructure: manifestRoot.String,
		}
	}
	entry.CreatedAt = time.Unix(createdAt, 0).UTC()
	return entry, nil
}

// Verify SqliteStore implements Store
var _ Store = (*SqliteStore)(nil)
