package artifact

import (
	"strings"
	"testing"
)

func TestParsePlainProseFallsBackToSingleFile(t *testing.T) {
	input := "Just some prose describing a skill.\nNo fences, no JSON."

	result := Parse(input)

	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(result.Files))
	}
	f := result.Files[0]
	if f.Path != PrimaryFilename {
		t.Errorf("expected path %q, got %q", PrimaryFilename, f.Path)
	}
	if f.Language != LangMarkdown {
		t.Errorf("expected language markdown, got %q", f.Language)
	}
	if f.Content != input {
		t.Errorf("expected content to equal the full input")
	}
	if result.MultiFile() {
		t.Error("single file result should not be multi-file")
	}
}

func TestParseEmptyStringIsTotal(t *testing.T) {
	result := Parse("")
	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file for empty input, got %d", len(result.Files))
	}
	if result.Files[0].Content != "" {
		t.Errorf("expected empty content, got %q", result.Files[0].Content)
	}
}

func TestParseUnbalancedFencesIsTotal(t *testing.T) {
	inputs := []string{
		"```\nunclosed",
		"```json\n{\"files\": [",
		"text ``` more ``` text ```",
		"``````",
	}
	for _, input := range inputs {
		result := Parse(input)
		if len(result.Files) < 1 {
			t.Errorf("input %q: expected at least 1 file, got %d", input, len(result.Files))
		}
	}
}

func TestParseStructuredJSON(t *testing.T) {
	input := "Here is your skill:\n```json\n" +
		`{"files": [{"path": "SKILL.md", "content": "# Hi"}, {"path": "src/run.ts", "content": "export {}"}], "manifest": {"name": "greeter", "rootStructure": "nested"}}` +
		"\n```\nDone."

	result := Parse(input)

	if len(result.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(result.Files))
	}
	if result.Files[0].Path != "SKILL.md" || result.Files[0].Content != "# Hi" {
		t.Errorf("unexpected first file: %+v", result.Files[0])
	}
	if result.Files[0].Language != LangMarkdown {
		t.Errorf("expected language derived from path, got %q", result.Files[0].Language)
	}
	if result.Files[1].Language != LangTypeScript {
		t.Errorf("expected typescript for src/run.ts, got %q", result.Files[1].Language)
	}
	if result.Manifest == nil || result.Manifest.Name != "greeter" || result.Manifest.RootStructure != "nested" {
		t.Errorf("manifest not propagated: %+v", result.Manifest)
	}
	if !result.MultiFile() {
		t.Error("expected multi-file result")
	}
}

func TestParseStructuredJSONWithoutFence(t *testing.T) {
	input := `The result: {"files": [{"content": "body only"}]}`

	result := Parse(input)

	if len(result.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(result.Files))
	}
	// Missing path is synthesized from position.
	if result.Files[0].Path != "file-0.md" {
		t.Errorf("expected synthesized path file-0.md, got %q", result.Files[0].Path)
	}
}

func TestParseStructuredSynthesizedPathsAreStable(t *testing.T) {
	input := `{"files": [{"content": "a"}, {"content": "b"}]}`

	first := Parse(input)
	second := Parse(input)

	for i := range first.Files {
		if first.Files[i].Path != second.Files[i].Path {
			t.Errorf("path %d not stable across parses: %q vs %q",
				i, first.Files[i].Path, second.Files[i].Path)
		}
	}
}

func TestParseStructuredDuplicatePathsTerminate(t *testing.T) {
	// The third file collides with the first, and a file already occupies
	// the first synthesized fallback name too.
	input := "```json\n" +
		`{"files": [` +
		`{"path": "file-2.md", "content": "a"}, ` +
		`{"path": "file-2-0.md", "content": "b"}, ` +
		`{"path": "file-2.md", "content": "c"}]}` +
		"\n```"

	result := Parse(input)

	if len(result.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(result.Files))
	}
	seen := map[string]bool{}
	for _, f := range result.Files {
		if seen[f.Path] {
			t.Errorf("duplicate path %q in result", f.Path)
		}
		seen[f.Path] = true
	}
	if result.Files[2].Content != "c" {
		t.Errorf("renamed file lost its content: got %q", result.Files[2].Content)
	}

	second := Parse(input)
	for i := range result.Files {
		if result.Files[i].Path != second.Files[i].Path {
			t.Errorf("path %d not stable across parses: %q vs %q",
				i, result.Files[i].Path, second.Files[i].Path)
		}
	}
}

func TestParseJSONPrecedesFencedBlocks(t *testing.T) {
	// Both a files-bearing JSON block and unrelated fences are present;
	// the JSON tier must win.
	input := "```json\n" +
		`{"files": [{"path": "A.md", "content": "from json"}, {"path": "B.md", "content": "also json"}]}` +
		"\n```\n\n```typescript\nconst x = 1\n```\n\n```css\nbody {}\n```\n"

	result := Parse(input)

	if len(result.Files) != 2 {
		t.Fatalf("expected the 2 JSON files, got %d", len(result.Files))
	}
	if result.Files[0].Path != "A.md" || result.Files[1].Path != "B.md" {
		t.Errorf("expected JSON-derived files, got %q and %q",
			result.Files[0].Path, result.Files[1].Path)
	}
}

func TestParseEmptyFilesArrayFallsThrough(t *testing.T) {
	input := `{"files": []}`

	result := Parse(input)

	// An empty files array is no match; the fallback keeps the raw text.
	if len(result.Files) != 1 {
		t.Fatalf("expected 1 fallback file, got %d", len(result.Files))
	}
	if result.Files[0].Content != input {
		t.Errorf("expected fallback to keep full input")
	}
}

func TestParseThreeFencedBlocks(t *testing.T) {
	input := "Intro text.\n\n```markdown\n# Greeter\n```\n\n```typescript\nexport const run = () => {}\n```\n\n```json\n[1, 2]\n```\n"

	result := Parse(input)

	if len(result.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(result.Files))
	}
	if result.Files[0].Path != PrimaryFilename {
		t.Errorf("first block must be %q regardless of tag, got %q", PrimaryFilename, result.Files[0].Path)
	}
	wantLangs := []string{LangMarkdown, LangTypeScript, LangJSON}
	for i, want := range wantLangs {
		if result.Files[i].Language != want {
			t.Errorf("file %d: expected language %q, got %q", i, want, result.Files[i].Language)
		}
	}
	if result.Files[1].Path != "src/file-1.ts" {
		t.Errorf("expected src/file-1.ts, got %q", result.Files[1].Path)
	}
	if result.Files[2].Path != "src/file-2.json" {
		t.Errorf("expected src/file-2.json, got %q", result.Files[2].Path)
	}
	if result.Manifest == nil || result.Manifest.RootStructure != "flat" {
		t.Errorf("expected flat manifest, got %+v", result.Manifest)
	}
}

func TestParseSingleFenceFallsBack(t *testing.T) {
	input := "Some text\n```markdown\n# Doc\n```\nmore text"

	result := Parse(input)

	if len(result.Files) != 1 {
		t.Fatalf("expected fallback single file, got %d files", len(result.Files))
	}
	if result.Files[0].Content != input {
		t.Errorf("fallback must keep the entire input, fences included")
	}
}

func TestParseFencedFillsNameFromFrontmatter(t *testing.T) {
	input := "```markdown\n---\nname: csv-wrangler\ndescription: wrangles\n---\n# CSV Wrangler\n```\n\n```typescript\nexport {}\n```\n"

	result := Parse(input)

	if result.Manifest == nil {
		t.Fatal("expected a manifest")
	}
	if result.Manifest.Name != "csv-wrangler" {
		t.Errorf("expected frontmatter name, got %q", result.Manifest.Name)
	}
	if SkillName(result) != "csv-wrangler" {
		t.Errorf("SkillName: got %q", SkillName(result))
	}
}

func TestSkillNameFromFallbackFrontmatter(t *testing.T) {
	input := "---\nname: solo-skill\n---\n# Body"

	result := Parse(input)

	if got := SkillName(result); got != "solo-skill" {
		t.Errorf("expected solo-skill, got %q", got)
	}
}

func TestParseFuzzishInputsNeverPanic(t *testing.T) {
	inputs := []string{
		"{",
		"}{",
		"```json\n{\"files\": \"not an array\"}\n```",
		strings.Repeat("`", 7),
		"data: [DONE]",
		"{\"manifest\": {\"name\": \"x\"}}",
		"\x00\x01\x02",
	}
	for _, input := range inputs {
		result := Parse(input)
		if len(result.Files) < 1 {
			t.Errorf("input %q: files.length >= 1 violated", input)
		}
	}
}
