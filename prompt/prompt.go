// Package prompt builds the templated prompts sent to the generation
// provider. The system prompt asks for the structured JSON shape first so
// the parser's highest-confidence tier applies; fenced blocks remain an
// accepted fallback.
package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

const systemPrompt = `You are a skill author. Given an idea, produce a complete skill: a SKILL.md
entry document with YAML frontmatter (name, description) plus any supporting
source files the skill needs.

Respond with a single JSON object inside a json-tagged code block:

{
  "files": [
    {"path": "SKILL.md", "content": "...", "language": "markdown"},
    {"path": "src/file-1.ts", "content": "...", "language": "typescript"}
  ],
  "manifest": {"name": "skill-name", "rootStructure": "flat"}
}

If you cannot produce JSON, emit one fenced code block per file with the
SKILL.md document first. Keep paths relative and slash-separated.`

var userTemplate = template.Must(template.New("user").Parse(
	`Create a skill for the following idea:

{{.Idea}}
{{- if .Name}}

Use {{.Name}} as the skill name.{{end}}`))

// Request is the input to Build.
type Request struct {
	Idea string
	Name string // optional name hint
}

// Build renders the system and user prompts for a generation request.
func Build(req Request) (system, user string, err error) {
	idea := strings.TrimSpace(req.Idea)
	if idea == "" {
		return "", "", fmt.Errorf("idea must not be empty")
	}

	var sb strings.Builder
	if err := userTemplate.Execute(&sb, struct{ Idea, Name string }{idea, strings.TrimSpace(req.Name)}); err != nil {
		return "", "", fmt.Errorf("render prompt: %w", err)
	}
	return systemPrompt, sb.String(), nil
}
