package extract

import "testing"

func TestExtractCandidateFencedBlock(t *testing.T) {
	text := "blah\n```json\n{\"name\":\"Ada\",\"age\":12,}\n```\n"
	c, status := ExtractCandidate(text, DefaultTags)
	if status != Found {
		t.Fatalf("status = %v, want Found", status)
	}
	if !c.Fenced || c.Tag != "json" {
		t.Errorf("expected fenced json candidate, got %+v", c)
	}
	want := `{"name":"Ada","age":12,}`
	if c.Text != want {
		t.Errorf("text = %q, want %q", c.Text, want)
	}
}

func TestExtractCandidateBalancedObjectNoFence(t *testing.T) {
	text := `here is data: {"a": 1, "b": [1,2,3]} trailing text`
	c, status := ExtractCandidate(text, DefaultTags)
	if status != Found {
		t.Fatalf("status = %v", status)
	}
	want := `{"a": 1, "b": [1,2,3]}`
	if c.Text != want {
		t.Errorf("text = %q, want %q", c.Text, want)
	}
}

func TestExtractCandidateIgnoresBraceInString(t *testing.T) {
	text := `{"msg": "a { b } c"}`
	c, status := ExtractCandidate(text, DefaultTags)
	if status != Found {
		t.Fatalf("status = %v", status)
	}
	if c.Text != text {
		t.Errorf("text = %q, want %q", c.Text, text)
	}
}

func TestExtractCandidateIncompleteFence(t *testing.T) {
	text := "```json\n{\"a\":1"
	_, status := ExtractCandidate(text, DefaultTags)
	if status != Incomplete {
		t.Fatalf("status = %v, want Incomplete", status)
	}
}

func TestExtractCandidateIncompleteBrace(t *testing.T) {
	text := `{"a": 1, "b":`
	_, status := ExtractCandidate(text, DefaultTags)
	if status != Incomplete {
		t.Fatalf("status = %v, want Incomplete", status)
	}
}

func TestExtractCandidateNotFound(t *testing.T) {
	_, status := ExtractCandidate("just some prose, no data here", DefaultTags)
	if status != NotFound {
		t.Fatalf("status = %v, want NotFound", status)
	}
}

func TestExtractCandidateLastResortFallback(t *testing.T) {
	c, status := ExtractCandidate(`"just a string"`, DefaultTags)
	if status != Found {
		t.Fatalf("status = %v, want Found", status)
	}
	if c.Text != `"just a string"` {
		t.Errorf("text = %q", c.Text)
	}
}

func TestExtractCandidatesMultiple(t *testing.T) {
	text := "```json\n{\"a\":1}\n```\nand also {\"b\":2} and [1,2]"
	cands, ok := ExtractCandidates(text, DefaultTags)
	if !ok {
		t.Fatal("expected candidates")
	}
	if len(cands) != 3 {
		t.Fatalf("got %d candidates: %+v", len(cands), cands)
	}
	if !cands[0].Fenced {
		t.Errorf("expected first candidate to be the fenced one (earliest start)")
	}
	if cands[1].Text != `{"b":2}` {
		t.Errorf("second candidate = %q", cands[1].Text)
	}
	if cands[2].Text != `[1,2]` {
		t.Errorf("third candidate = %q", cands[2].Text)
	}
}

func TestExtractCandidatesExcludesFencedRegion(t *testing.T) {
	text := "```json\n{\"a\": {\"nested\": 1}}\n```"
	cands, _ := ExtractCandidates(text, DefaultTags)
	if len(cands) != 1 {
		t.Fatalf("expected only the fenced candidate, got %d: %+v", len(cands), cands)
	}
}
