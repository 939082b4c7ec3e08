// Package export materializes generated files: direct writes into a save
// root, or a zip archive for download.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillsmith/skillsmith/model"
)

// Archive writes files to w as a zip archive. Entry names are the files'
// relative paths, contents are copied byte-for-byte, and every call is a
// complete rebuild; there is no deduplication or compression tuning.
func Archive(w io.Writer, files []model.GeneratedFile) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		entry, err := zw.Create(f.Path)
		if err != nil {
			return fmt.Errorf("create archive entry %q: %w", f.Path, err)
		}
		if _, err := entry.Write([]byte(f.Content)); err != nil {
			return fmt.Errorf("write archive entry %q: %w", f.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

// WriteFile writes content to path, creating parent directories as needed
// and overwriting without merge.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// SaveAll writes every file under root, preserving relative paths. Each
// write is independent; a failure is surfaced as a save error with no
// partial cleanup, and the caller retries the whole operation.
func SaveAll(root string, files []model.GeneratedFile) error {
	for _, f := range files {
		rel, err := safeRelPath(f.Path)
		if err != nil {
			return err
		}
		if err := WriteFile(filepath.Join(root, rel), f.Content); err != nil {
			return err
		}
	}
	return nil
}

// safeRelPath rejects paths that would escape the save root.
func safeRelPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty file path")
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid file path %q", p)
	}
	return clean, nil
}

// ArchiveName returns the download filename for a result: <name>.zip for a
// named skill, skill.zip otherwise.
func ArchiveName(skillName string) string {
	if skillName == "" {
		return "skill.zip"
	}
	return skillName + ".zip"
}
