package value

import "testing"

func TestDumpsJSONScalars(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"integer", Number(12), "12"},
		{"negative integer", Number(-3), "-3"},
		{"fraction", Number(1.5), "1.5"},
		{"string", String("Ada"), `"Ada"`},
		{"string with quote", String(`say "hi"`), `"say \"hi\""`},
		{"string with control char", String("a\x01b"), `"ab"`},
		{"nan becomes null", Number(nanValue()), "null"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DumpsJSON(c.v)
			if got != c.want {
				t.Errorf("DumpsJSON(%v) = %q, want %q", c.v, got, c.want)
			}
		})
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", Number(1))
	o.Set("a", Number(2))
	o.Set("m", Number(3))
	got := DumpsJSON(FromObject(o))
	want := `{"z":1,"a":2,"m":3}`
	if got != want {
		t.Errorf("DumpsJSON = %q, want %q", got, want)
	}
}

func TestObjectSetOverwriteKeepsPosition(t *testing.T) {
	o := NewObject()
	o.Set("a", Number(1))
	o.Set("b", Number(2))
	o.Set("a", Number(99))
	got := DumpsJSON(FromObject(o))
	want := `{"a":99,"b":2}`
	if got != want {
		t.Errorf("DumpsJSON = %q, want %q", got, want)
	}
}

func TestEqualNumericEquality(t *testing.T) {
	if !Equal(Number(1), Number(1.0)) {
		t.Error("expected 1 == 1.0")
	}
	if Equal(Number(1), String("1")) {
		t.Error("expected number != string with same text")
	}
}

func TestEqualObjectOrderIndependent(t *testing.T) {
	a := NewObject()
	a.Set("x", Number(1))
	a.Set("y", Number(2))
	b := NewObject()
	b.Set("y", Number(2))
	b.Set("x", Number(1))
	if !Equal(FromObject(a), FromObject(b)) {
		t.Error("expected objects with same contents, different order, to be equal")
	}
}

func TestIsInteger(t *testing.T) {
	if !Number(3).IsInteger() {
		t.Error("expected 3 to be integer")
	}
	if Number(3.5).IsInteger() {
		t.Error("expected 3.5 to not be integer")
	}
}

func TestCloneIsDeep(t *testing.T) {
	o := NewObject()
	o.Set("items", Array([]Value{Number(1), Number(2)}))
	orig := FromObject(o)
	clone := orig.Clone()

	clone.Obj.Set("items", Array([]Value{Number(99)}))
	origItems, _ := orig.Obj.Get("items")
	if len(origItems.Arr) != 2 {
		t.Errorf("mutating clone affected original: %v", origItems)
	}
}

func TestDumpsJSONArrayAndObjectNesting(t *testing.T) {
	o := NewObject()
	o.Set("name", String("Ada"))
	o.Set("tags", Array([]Value{String("a"), String("b")}))
	got := DumpsJSON(FromObject(o))
	want := `{"name":"Ada","tags":["a","b"]}`
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestDumpsJSONPrettyIndents(t *testing.T) {
	o := NewObject()
	o.Set("a", Number(1))
	got := DumpsJSONPretty(FromObject(o))
	want := "{\n  \"a\": 1\n}"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
