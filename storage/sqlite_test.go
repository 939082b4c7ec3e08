package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skillsmith/skillsmith/model"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	store, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSqliteCreateAndLookupUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := model.User{
		ID:           "u1",
		Username:     "ada",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byName, err := store.UserByUsername(ctx, "ada")
	if err != nil {
		t.Fatalf("UserByUsername failed: %v", err)
	}
	if byName.ID != "u1" || byName.PasswordHash != user.PasswordHash {
		t.Errorf("unexpected user: %+v", byName)
	}

	byID, err := store.UserByID(ctx, "u1")
	if err != nil {
		t.Fatalf("UserByID failed: %v", err)
	}
	if byID.Username != "ada" {
		t.Errorf("expected username 'ada', got '%s'", byID.Username)
	}
}

func TestSqliteDuplicateUsername(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := model.User{ID: "u1", Username: "ada", PasswordHash: "h1", CreatedAt: time.Now()}
	if err := store.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	second := model.User{ID: "u2", Username: "ada", PasswordHash: "h2", CreatedAt: time.Now()}
	err := store.CreateUser(ctx, second)
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestSqliteUserNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.UserByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.UserByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSqliteSaveAndLoadEntry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := model.HistoryEntry{
		ID:        "g1",
		UserID:    "u1",
		Idea:      "a skill for writing commit messages",
		SkillName: "commit-helper",
		Result: model.ParseResult{
			Files: []model.GeneratedFile{
				{Path: "SKILL.md", Content: "# Commit Helper", Language: "markdown"},
				{Path: "src/file-1.ts", Content: "export {}", Language: "typescript"},
			},
			Manifest: &model.Manifest{Name: "commit-helper", RootStructure: "flat"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := store.SaveEntry(ctx, entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	loaded, err := store.Entry(ctx, "g1")
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if loaded.Idea != entry.Idea {
		t.Errorf("expected idea '%s', got '%s'", entry.Idea, loaded.Idea)
	}
	if loaded.SkillName != "commit-helper" {
		t.Errorf("expected skill name 'commit-helper', got '%s'", loaded.SkillName)
	}
	if loaded.Result.Manifest == nil || loaded.Result.Manifest.RootStructure != "flat" {
		t.Errorf("manifest not restored: %+v", loaded.Result.Manifest)
	}
	if len(loaded.Result.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(loaded.Result.Files))
	}
	if loaded.Result.Files[0].Path != "SKILL.md" {
		t.Errorf("file order lost: first file is '%s'", loaded.Result.Files[0].Path)
	}
	if loaded.Result.Files[1].Language != "typescript" {
		t.Errorf("expected language 'typescript', got '%s'", loaded.Result.Files[1].Language)
	}
}

func TestSqliteEntryWithoutManifest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := model.HistoryEntry{
		ID:     "g1",
		UserID: "u1",
		Idea:   "anything",
		Result: model.ParseResult{
			Files: []model.GeneratedFile{
				{Path: "SKILL.md", Content: "plain text", Language: "markdown"},
			},
		},
		CreatedAt: time.Now(),
	}
	if err := store.SaveEntry(ctx, entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	loaded, err := store.Entry(ctx, "g1")
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	if loaded.Result.Manifest != nil {
		t.Errorf("expected nil manifest, got %+v", loaded.Result.Manifest)
	}
}

func TestSqliteListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"g1", "g2", "g3"} {
		entry := model.HistoryEntry{
			ID:     id,
			UserID: "u1",
			Idea:   "idea " + id,
			Result: model.ParseResult{
				Files: []model.GeneratedFile{{Path: "SKILL.md", Content: id, Language: "markdown"}},
			},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveEntry(ctx, entry); err != nil {
			t.Fatalf("SaveEntry failed: %v", err)
		}
	}
	other := model.HistoryEntry{
		ID:     "g4",
		UserID: "u2",
		Idea:   "someone else's",
		Result: model.ParseResult{
			Files: []model.GeneratedFile{{Path: "SKILL.md", Content: "x", Language: "markdown"}},
		},
		CreatedAt: base,
	}
	if err := store.SaveEntry(ctx, other); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	entries, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "g3" || entries[2].ID != "g1" {
		t.Errorf("expected newest first, got %s, %s, %s", entries[0].ID, entries[1].ID, entries[2].ID)
	}
}

func TestSqliteListEmpty(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if entries == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}

func TestSqliteDeleteEntry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := model.HistoryEntry{
		ID:     "g1",
		UserID: "u1",
		Idea:   "delete me",
		Result: model.ParseResult{
			Files: []model.GeneratedFile{{Path: "SKILL.md", Content: "x", Language: "markdown"}},
		},
		CreatedAt: time.Now(),
	}
	if err := store.SaveEntry(ctx, entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	if err := store.DeleteEntry(ctx, "g1"); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if _, err := store.Entry(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteEntry(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSqliteSettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetSetting(ctx, "u1", "provider", "openai"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := store.SetSetting(ctx, "u1", "provider", "anthropic"); err != nil {
		t.Fatalf("SetSetting (update) failed: %v", err)
	}
	if err := store.SetSetting(ctx, "u1", "model", "claude-sonnet-4-20250514"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	value, err := store.Setting(ctx, "u1", "provider")
	if err != nil {
		t.Fatalf("Setting failed: %v", err)
	}
	if value != "anthropic" {
		t.Errorf("expected 'anthropic', got '%s'", value)
	}

	all, err := store.Settings(ctx, "u1")
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 settings, got %d", len(all))
	}

	if _, err := store.Setting(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
