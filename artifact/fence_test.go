package artifact

import "testing"

func TestScanFencesBasic(t *testing.T) {
	text := "before\n```typescript\nconst a = 1\nconst b = 2\n```\nafter"

	blocks := scanFences(text)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Tag != "typescript" {
		t.Errorf("expected tag typescript, got %q", blocks[0].Tag)
	}
	if blocks[0].Body != "const a = 1\nconst b = 2" {
		t.Errorf("unexpected body: %q", blocks[0].Body)
	}
}

func TestScanFencesUntagged(t *testing.T) {
	blocks := scanFences("```\nplain\n```")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Tag != "" {
		t.Errorf("expected empty tag, got %q", blocks[0].Tag)
	}
}

func TestScanFencesMultiple(t *testing.T) {
	text := "```md\none\n```\ntext between\n```json\n{}\n```\n"

	blocks := scanFences(text)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Tag != "md" || blocks[1].Tag != "json" {
		t.Errorf("tags out of order: %q, %q", blocks[0].Tag, blocks[1].Tag)
	}
}

func TestScanFencesUnterminated(t *testing.T) {
	blocks := scanFences("```yaml\nkey: value\nstill inside")

	if len(blocks) != 1 {
		t.Fatalf("expected the unterminated block to be emitted, got %d", len(blocks))
	}
	if blocks[0].Body != "key: value\nstill inside" {
		t.Errorf("unexpected body: %q", blocks[0].Body)
	}
}

func TestScanFencesIgnoresTrailingAttributes(t *testing.T) {
	blocks := scanFences("```ts file=src/main.ts\nexport {}\n```")

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Tag != "ts" {
		t.Errorf("expected tag ts, got %q", blocks[0].Tag)
	}
}

func TestScanFencesBackticksInsideBlock(t *testing.T) {
	// Inline backticks are not fence markers; only a bare ``` line closes.
	text := "```markdown\nuse ```code``` spans\n```\n"

	blocks := scanFences(text)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Body != "use ```code``` spans" {
		t.Errorf("unexpected body: %q", blocks[0].Body)
	}
}

func TestScanFencesEmptyInput(t *testing.T) {
	if blocks := scanFences(""); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}
