// Package workspace resolves where generated skills are saved: inside the
// current project when one is detected, otherwise under the user's home
// directory.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Labels for the two save targets.
const (
	LabelProject = "project"
	LabelGlobal  = "global"
)

// Target is a resolved save root.
type Target struct {
	Label string `json:"label"` // "project" or "global"
	Path  string `json:"path"`  // absolute directory
}

// Detect resolves the save target for dir. A directory is part of a project
// when it or any ancestor contains a .git marker (a directory in normal
// checkouts, a file in worktrees); the target is then <root>/skills. With no
// marker the target is ~/.skillsmith/skills.
func Detect(dir string) (Target, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Target{}, fmt.Errorf("resolve working directory: %w", err)
	}

	if root, ok := findProjectRoot(abs); ok {
		return Target{Label: LabelProject, Path: filepath.Join(root, "skills")}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Target{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return Target{Label: LabelGlobal, Path: filepath.Join(home, ".skillsmith", "skills")}, nil
}

// findProjectRoot walks from dir upward looking for a .git marker.
func findProjectRoot(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
