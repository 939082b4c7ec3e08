// Package model provides domain types shared across packages.
package model

import "time"

// GeneratedFile is a single unit of generated output.
type GeneratedFile struct {
	// Path is a relative, slash-separated path, unique within a response.
	Path string `json:"path"`
	// Content is the full text of the file.
	Content string `json:"content"`
	// Language is a canonical language tag ("markdown", "typescript", ...),
	// derived from the path or fence tag, never user-supplied.
	Language string `json:"language"`
}

// Manifest carries optional metadata attached to a parsed response.
// It is informational only; nothing enforces RootStructure.
type Manifest struct {
	Name          string `json:"name,omitempty"`
	RootStructure string `json:"rootStructure,omitempty"` // "flat" or "nested"
}

// ParseResult is the output of parsing one model response.
// Files are ordered by appearance in the response and never empty.
type ParseResult struct {
	Files    []GeneratedFile `json:"files"`
	Manifest *Manifest       `json:"manifest,omitempty"`
}

// MultiFile reports whether the result is a multi-file artifact.
// Cardinality is the source of truth; there is no stored flag.
func (r ParseResult) MultiFile() bool {
	return len(r.Files) > 1
}

// Primary returns the first file of the result, the entry-point document.
func (r ParseResult) Primary() GeneratedFile {
	if len(r.Files) == 0 {
		return GeneratedFile{}
	}
	return r.Files[0]
}

// Name returns the manifest name if present, otherwise empty.
func (r ParseResult) Name() string {
	if r.Manifest == nil {
		return ""
	}
	return r.Manifest.Name
}

// User is a local account. PasswordHash is a bcrypt hash and never leaves
// the process in JSON form.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryEntry records one past generation. The attached ParseResult is the
// record of what the model produced; later edits copy, they do not mutate it.
// Entries are append-only until deleted.
type HistoryEntry struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Idea      string      `json:"idea"`
	SkillName string      `json:"skill_name"`
	Result    ParseResult `json:"result"`
	CreatedAt time.Time   `json:"created_at"`
}
