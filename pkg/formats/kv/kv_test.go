package kv

import (
	"testing"

	"llmstructured/pkg/value"
)

func TestDecode_Basic(t *testing.T) {
	v, err := Decode("name=Ada\nage=12\nactive=true\nnote=\"hello world\"\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, _ := v.Obj.Get("name")
	age, _ := v.Obj.Get("age")
	active, _ := v.Obj.Get("active")
	note, _ := v.Obj.Get("note")
	if name.Str != "Ada" || age.Num != 12 || !active.Bool || note.Str != "hello world" {
		t.Fatalf("got %+v", v)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Number(1))
	obj.Set("b", value.String("plain"))
	v := value.FromObject(obj)

	text, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode(text)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(v, back) {
		t.Fatalf("round trip mismatch: %s -> %+v", text, back)
	}
}
