package toml

import "testing"

func TestDecode_ScalarsAndTable(t *testing.T) {
	text := "name = \"Ada\"\nage = 12\nactive = true\n\n[address]\ncity = \"London\"\n"
	v, err := Decode(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, _ := v.Obj.Get("name")
	age, _ := v.Obj.Get("age")
	active, _ := v.Obj.Get("active")
	if name.Str != "Ada" || age.Num != 12 || !active.Bool {
		t.Fatalf("got %+v", v)
	}
	addr, ok := v.Obj.Get("address")
	if !ok {
		t.Fatal("expected nested address table")
	}
	city, _ := addr.Obj.Get("city")
	if city.Str != "London" {
		t.Fatalf("expected city=London, got %+v", city)
	}
}

func TestDecode_Array(t *testing.T) {
	v, err := Decode("tags = [\"a\", \"b\", \"c\"]\n")
	if err != nil {
		t.Fatal(err)
	}
	tags, _ := v.Obj.Get("tags")
	if len(tags.Arr) != 3 || tags.Arr[1].Str != "b" {
		t.Fatalf("got %+v", tags)
	}
}

func TestDecode_KeysAreSortedAlphabetically(t *testing.T) {
	v, err := Decode("z = 1\na = 2\nm = 3\n")
	if err != nil {
		t.Fatal(err)
	}
	keys := v.Obj.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "m" || keys[2] != "z" {
		t.Fatalf("expected alphabetical fallback order, got %v", keys)
	}
}
