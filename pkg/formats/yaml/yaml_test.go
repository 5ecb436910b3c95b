package yaml

import (
	"testing"

	"llmstructured/pkg/value"
)

func TestDecode_ScalarsAndNesting(t *testing.T) {
	v, err := Decode("name: Ada\nage: 12\ntags:\n  - a\n  - b\nactive: true\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, _ := v.Obj.Get("name")
	age, _ := v.Obj.Get("age")
	tags, _ := v.Obj.Get("tags")
	active, _ := v.Obj.Get("active")
	if name.Str != "Ada" || age.Num != 12 || !active.Bool {
		t.Fatalf("got %+v", v)
	}
	if len(tags.Arr) != 2 || tags.Arr[0].Str != "a" || tags.Arr[1].Str != "b" {
		t.Fatalf("expected tags=[a b], got %+v", tags)
	}
}

func TestDecode_PreservesKeyOrder(t *testing.T) {
	v, err := Decode("z: 1\na: 2\nm: 3\n")
	if err != nil {
		t.Fatal(err)
	}
	got := value.DumpsJSON(v)
	want := `{"z":1,"a":2,"m":3}`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	obj := value.NewObject()
	obj.Set("name", value.String("Ada"))
	obj.Set("age", value.Number(12))
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
