package export

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsmith/skillsmith/artifact"
	"github.com/skillsmith/skillsmith/model"
)

func TestArchiveRoundTrip(t *testing.T) {
	// Parse a 2-file response, archive it, and check entries byte-for-byte.
	response := "```markdown\n# Greeter\n```\n\n```typescript\nexport const hi = () => \"hi\"\n```\n"
	result := artifact.Parse(response)
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(result.Files))
	}

	var buf bytes.Buffer
	if err := Archive(&buf, result.Files); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("invalid archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}

	for i, f := range result.Files {
		entry := zr.File[i]
		if entry.Name != f.Path {
			t.Errorf("entry %d: name %q, want %q", i, entry.Name, f.Path)
		}
		rc, err := entry.Open()
		if err != nil {
			t.Fatalf("open entry %q: %v", entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %q: %v", entry.Name, err)
		}
		if string(content) != f.Content {
			t.Errorf("entry %q: content mismatch", entry.Name)
		}
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "SKILL.md")

	if err := WriteFile(target, "# doc"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(content) != "# doc" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "f.md")

	if err := WriteFile(target, "old"); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(target, "new"); err != nil {
		t.Fatal(err)
	}

	content, _ := os.ReadFile(target)
	if string(content) != "new" {
		t.Errorf("expected overwrite, got %q", content)
	}
}

func TestSaveAllPreservesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	files := []model.GeneratedFile{
		{Path: "SKILL.md", Content: "# doc"},
		{Path: "src/file-1.ts", Content: "export {}"},
	}

	if err := SaveAll(dir, files); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	for _, f := range files {
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Path)))
		if err != nil {
			t.Fatalf("missing %q: %v", f.Path, err)
		}
		if string(content) != f.Content {
			t.Errorf("%q: content mismatch", f.Path)
		}
	}
}

func TestSaveAllRejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"../evil.md", "/abs.md", ""} {
		err := SaveAll(dir, []model.GeneratedFile{{Path: p, Content: "x"}})
		if err == nil {
			t.Errorf("path %q: expected error", p)
		}
	}
}

func TestArchiveName(t *testing.T) {
	if got := ArchiveName("greeter"); got != "greeter.zip" {
		t.Errorf("got %q", got)
	}
	if got := ArchiveName(""); got != "skill.zip" {
		t.Errorf("got %q", got)
	}
}
