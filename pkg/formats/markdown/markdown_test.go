package markdown

import "testing"

func TestFencedBlocks_FindsLanguageTaggedFences(t *testing.T) {
	doc := "Intro text.\n\n```json\n{\"a\":1}\n```\n\nMore text.\n\n```sql\nSELECT 1;\n```\n"
	blocks, err := FencedBlocks(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 fenced blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Lang != "json" || blocks[0].Body != "{\"a\":1}\n" {
		t.Fatalf("got %+v", blocks[0])
	}
	if blocks[1].Lang != "sql" {
		t.Fatalf("got %+v", blocks[1])
	}
}

func TestJSONBlocks_IncludesUntaggedFences(t *testing.T) {
	doc := "```\n{\"a\":1}\n```\n\n```yaml\na: 1\n```\n"
	blocks, err := JSONBlocks(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Lang != "" {
		t.Fatalf("expected only the untagged fence, got %+v", blocks)
	}
}

func TestFencedBlocks_NoFences(t *testing.T) {
	blocks, err := FencedBlocks("just prose, no fences here")
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %+v", blocks)
	}
}
