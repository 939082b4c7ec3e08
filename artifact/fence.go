package artifact

import "strings"

// fenceBlock is a single Markdown fenced code block.
type fenceBlock struct {
	Tag  string // language hint after the opening fence, may be empty
	Body string // content between the fences, without a trailing newline
}

// scanFences extracts triple-backtick fenced code blocks from text in order
// of appearance. The scanner is line-based: an opening fence is a line whose
// trimmed form starts with ``` followed by an optional tag, and a closing
// fence is a line that is exactly ``` once trimmed. Fences are never nested;
// a ``` line inside a block always closes it. An unterminated block runs to
// the end of the input.
func scanFences(text string) []fenceBlock {
	lines := strings.Split(text, "\n")

	var blocks []fenceBlock
	var buf strings.Builder
	var tag string
	inBlock := false

	flush := func() {
		blocks = append(blocks, fenceBlock{Tag: tag, Body: buf.String()})
		buf.Reset()
		inBlock = false
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inBlock {
			if trimmed == "```" {
				flush()
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(line)
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			rest := strings.TrimPrefix(trimmed, "```")
			// The tag is the first word after the fence; anything after it
			// (file hints, attributes) is ignored.
			tag = ""
			if fields := strings.Fields(rest); len(fields) > 0 {
				tag = fields[0]
			}
			inBlock = true
		}
	}

	if inBlock {
		flush()
	}

	return blocks
}
