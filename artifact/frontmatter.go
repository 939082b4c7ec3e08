package artifact

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter is the subset of YAML frontmatter the parser cares about.
type frontmatter struct {
	Name string `yaml:"name"`
}

// frontmatterName extracts the name field from a document's leading YAML
// frontmatter block (--- delimited). Returns empty on any shape or decode
// mismatch; a missing name is not an error.
func frontmatterName(content string) string {
	trimmed := strings.TrimPrefix(content, "\uFEFF")
	if !strings.HasPrefix(trimmed, "---\n") && !strings.HasPrefix(trimmed, "---\r\n") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")[1:]
	end := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return ""
	}

	block := strings.Join(lines[:end], "\n")
	var fm frontmatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return ""
	}
	return strings.TrimSpace(fm.Name)
}
