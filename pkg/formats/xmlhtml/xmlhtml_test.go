package xmlhtml

import "testing"

func TestJSONScriptCandidates_FiltersByType(t *testing.T) {
	html := `<html><body>
<script type="application/json">{"a":1}</script>
<script type="application/ld+json">{"b":2}</script>
<script type="text/javascript">var x = 1;</script>
</body></html>`
	out, err := JSONScriptCandidates(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 json-typed scripts, got %d: %+v", len(out), out)
	}
	if out[0] != `{"a":1}` || out[1] != `{"b":2}` {
		t.Fatalf("got %+v", out)
	}
}

func TestTableCellCandidates_SkipsEmptyCells(t *testing.T) {
	html := `<table><tr><td>  {"a":1}  </td><td></td><th>header</th></tr></table>`
	out, err := TableCellCandidates(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0] != `{"a":1}` || out[1] != "header" {
		t.Fatalf("got %+v", out)
	}
}
