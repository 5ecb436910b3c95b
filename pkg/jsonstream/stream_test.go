package jsonstream

import (
	"strings"
	"testing"

	"llmstructured/pkg/repair"
)

func TestSingle_FullInputAtOnce(t *testing.T) {
	s := NewSingle(Limits{}, repair.Default(), nil)
	s.Append(`{"name": "Ada", "age": 12}`)
	out := s.Poll()
	if !out.Done || !out.OK {
		t.Fatalf("expected immediate success, got %+v", out)
	}
	name, _ := out.Value.Obj.Get("name")
	if name.Str != "Ada" {
		t.Fatalf("got %+v", out.Value)
	}
}

func TestSingle_IncompleteUntilFinish(t *testing.T) {
	s := NewSingle(Limits{}, repair.Default(), nil)
	s.Append("```json\n{\"a\":1")
	if out := s.Poll(); out.Done {
		t.Fatalf("expected not-ready, got %+v", out)
	}
	s.Finish()
	out := s.Poll()
	if !out.Done || out.OK {
		t.Fatalf("expected terminal error, got %+v", out)
	}
	if out.Error.Path != "$.stream.incomplete" {
		t.Fatalf("got path %s", out.Error.Path)
	}
}

func TestSingle_ChunkedSameAsWhole(t *testing.T) {
	full := `{"a": 1, "b": [1,2,3]}`
	whole := NewSingle(Limits{}, repair.Default(), nil)
	whole.Append(full)
	whole.Finish()
	wantOut := whole.Poll()

	chunked := NewSingle(Limits{}, repair.Default(), nil)
	for _, chunk := range strings.Split(full, "") {
		chunked.Append(chunk)
	}
	chunked.Finish()
	gotOut := chunked.Poll()

	if gotOut.Done != wantOut.Done || gotOut.OK != wantOut.OK {
		t.Fatalf("chunked outcome diverged: %+v vs %+v", gotOut, wantOut)
	}
}

func TestBuffer_MaxBufferBytes(t *testing.T) {
	s := NewSingle(Limits{MaxBufferBytes: 8}, repair.Default(), nil)
	s.Append("0123456789")
	out := s.Poll()
	if !out.Done || out.OK {
		t.Fatalf("expected terminal limit error, got %+v", out)
	}
	if out.Error.Path != "$.stream.maxBufferBytes" {
		t.Fatalf("got path %s", out.Error.Path)
	}
	if !strings.Contains(out.Error.Message, "max=8") {
		t.Fatalf("message must contain max=8: %s", out.Error.Message)
	}
}

func TestCollector_MultipleObjects(t *testing.T) {
	c := NewCollector(Limits{}, repair.Default(), nil)
	c.Append(`{"a":1}`)
	c.Append(`{"b":2}`)
	c.Close()
	out := c.Poll()
	if !out.Done || !out.OK {
		t.Fatalf("expected terminal success, got %+v", out)
	}
	if len(out.Value.Arr) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out.Value.Arr))
	}
}

func TestBatch_EmitsIncrementally(t *testing.T) {
	b := NewBatch(Limits{}, repair.Default(), nil)
	b.Append(`{"a":1}`)
	out1 := b.Poll()
	if out1.Done || !out1.OK || len(out1.Value.Arr) != 1 {
		t.Fatalf("expected 1-item non-terminal batch, got %+v", out1)
	}

	b.Append(`{"b":2}`)
	out2 := b.Poll()
	if out2.Done || !out2.OK || len(out2.Value.Arr) != 1 {
		t.Fatalf("expected another 1-item batch, got %+v", out2)
	}

	b.Close()
	out3 := b.Poll()
	if !out3.Done || !out3.OK || len(out3.Value.Arr) != 0 {
		t.Fatalf("expected terminal empty batch, got %+v", out3)
	}
}

func TestStream_MaxItems(t *testing.T) {
	c := NewCollector(Limits{MaxItems: 1}, repair.Default(), nil)
	c.Append(`{"a":1}`)
	c.Append(`{"b":2}`)
	out := c.Poll()
	if !out.Done || out.OK {
		t.Fatalf("expected terminal limit error, got %+v", out)
	}
	if out.Error.Path != "$.stream.maxItems" {
		t.Fatalf("got path %s", out.Error.Path)
	}
	if !strings.Contains(out.Error.Message, "max=1") {
		t.Fatalf("message must contain max=1: %s", out.Error.Message)
	}
}

func TestLocation_TracksLineAndCol(t *testing.T) {
	s := NewSingle(Limits{}, repair.Default(), nil)
	s.Append("abc\ndef")
	loc := s.Location()
	if loc.Offset != 7 || loc.Line != 2 || loc.Col != 4 {
		t.Fatalf("got %+v", loc)
	}
}
