// Package artifact parses model responses into one or more generated files.
//
// A response may arrive in three shapes, tried in order of decreasing
// confidence:
//  1. A JSON object carrying an explicit files array (authoritative).
//  2. Two or more Markdown fenced code blocks, one file per block.
//  3. Anything else, kept whole as a single Markdown document.
//
// The last tier never fails, so Parse is total: every input, including the
// empty string, yields at least one file.
package artifact

import (
	"fmt"

	"github.com/skillsmith/skillsmith/internal/jsonx"
	"github.com/skillsmith/skillsmith/model"
)

// PrimaryFilename is the canonical entry-point filename. The first file of
// every artifact is named this by convention.
const PrimaryFilename = "SKILL.md"

// structuredFile is one element of a structured response's files array.
type structuredFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// structuredResponse is the explicit multi-file shape a model may return.
type structuredResponse struct {
	Files    []structuredFile `json:"files"`
	Manifest *model.Manifest  `json:"manifest"`
}

// Parse converts the complete text of a model response into a ParseResult.
// It never fails; see the package comment for the tier order. JSON detection
// strictly precedes fence detection: an explicit files array is authoritative
// over incidental code fencing around or inside it.
func Parse(text string) model.ParseResult {
	if result, ok := parseStructured(text); ok {
		return fillName(result)
	}
	if result, ok := parseFenced(text); ok {
		return fillName(result)
	}
	return model.ParseResult{
		Files: []model.GeneratedFile{{
			Path:     PrimaryFilename,
			Content:  text,
			Language: LangMarkdown,
		}},
	}
}

// SkillName derives a display name for a parsed result: the manifest name
// when present, otherwise the name field of the primary file's YAML
// frontmatter, otherwise empty.
func SkillName(r model.ParseResult) string {
	if name := r.Name(); name != "" {
		return name
	}
	return frontmatterName(r.Primary().Content)
}

// parseStructured attempts the highest-confidence tier: a JSON object with a
// files array, either inside a json-tagged fence or embedded in the text.
func parseStructured(text string) (model.ParseResult, bool) {
	for _, block := range scanFences(text) {
		if LanguageForTag(block.Tag) != LangJSON {
			continue
		}
		if resp, ok := jsonx.DecodeExact[structuredResponse](block.Body); ok {
			if result, ok := fromStructured(resp); ok {
				return result, true
			}
		}
	}

	if resp, ok := jsonx.Decode[structuredResponse](text); ok {
		return fromStructured(resp)
	}
	return model.ParseResult{}, false
}

func fromStructured(resp structuredResponse) (model.ParseResult, bool) {
	if len(resp.Files) == 0 {
		return model.ParseResult{}, false
	}

	seen := make(map[string]bool, len(resp.Files))
	files := make([]model.GeneratedFile, 0, len(resp.Files))
	for i, f := range resp.Files {
		path := f.Path
		if path == "" || seen[path] {
			// Synthesized from position so repeated parses are stable.
			path = fmt.Sprintf("file-%d.md", i)
		}
		for n := 0; seen[path]; n++ {
			path = fmt.Sprintf("file-%d-%d.md", i, n)
		}
		seen[path] = true

		language := f.Language
		if language == "" {
			language = LanguageForPath(path)
		}

		files = append(files, model.GeneratedFile{
			Path:     path,
			Content:  f.Content,
			Language: language,
		})
	}

	// Manifest propagates unchanged; absence is fine.
	return model.ParseResult{Files: files, Manifest: resp.Manifest}, true
}

// parseFenced attempts the middle tier: two or more fenced code blocks, one
// file per block. The first block is always the canonical primary document
// regardless of its own tag; later blocks are named positionally.
func parseFenced(text string) (model.ParseResult, bool) {
	blocks := scanFences(text)
	if len(blocks) < 2 {
		return model.ParseResult{}, false
	}

	files := make([]model.GeneratedFile, 0, len(blocks))
	for i, block := range blocks {
		var path string
		if i == 0 {
			path = PrimaryFilename
		} else {
			path = fmt.Sprintf("src/file-%d.%s", i, ExtensionFor(LanguageForTag(block.Tag)))
		}

		language := LanguageForTag(block.Tag)
		if block.Tag == "" {
			language = LanguageForPath(path)
		}

		files = append(files, model.GeneratedFile{
			Path:     path,
			Content:  block.Body,
			Language: language,
		})
	}

	return model.ParseResult{
		Files:    files,
		Manifest: &model.Manifest{RootStructure: "flat"},
	}, true
}

// fillName backfills an empty manifest name from the primary document's
// frontmatter. An already-named manifest is left alone.
func fillName(r model.ParseResult) model.ParseResult {
	if r.Manifest == nil || r.Manifest.Name != "" {
		return r
	}
	if name := frontmatterName(r.Primary().Content); name != "" {
		m := *r.Manifest
		m.Name = name
		r.Manifest = &m
	}
	return r
}
