package infer

import (
	"testing"

	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/repair"
	"llmstructured/pkg/schema"
	"llmstructured/pkg/value"
)

func parseVal(t *testing.T, text string) jsonparse.Result {
	t.Helper()
	r := jsonparse.Parse(text, true, repair.FirstWins)
	if r.Err != nil {
		t.Fatalf("parse %q: %v", text, r.Err)
	}
	return r
}

func TestInferSchema_ValidatesOriginalValue(t *testing.T) {
	v := parseVal(t, `{"name":"Ada","age":12,"tags":["a","b"]}`).Value
	s := InferSchema(v, DefaultConfig())
	if d := schema.Validate(v, s); d != nil {
		t.Fatalf("inferred schema must accept the value it came from: %+v", d)
	}
}

func TestInferSchema_IntegerVsNumber(t *testing.T) {
	intV := parseVal(t, `5`).Value
	numV := parseVal(t, `5.5`).Value

	s1 := InferSchema(intV, DefaultConfig())
	typ, _ := s1.V.Obj.Get("type")
	if typ.Str != "integer" {
		t.Fatalf("expected integer, got %s", typ.Str)
	}

	s2 := InferSchema(numV, DefaultConfig())
	typ2, _ := s2.V.Obj.Get("type")
	if typ2.Str != "number" {
		t.Fatalf("expected number, got %s", typ2.Str)
	}
}

func TestInferSchemaFromValues_DetectsEnum(t *testing.T) {
	a := parseVal(t, `"red"`).Value
	b := parseVal(t, `"green"`).Value
	c := parseVal(t, `"red"`).Value

	s := InferSchemaFromValues([]value.Value{a, b, c}, DefaultConfig())
	enum, ok := s.V.Obj.Get("enum")
	if !ok || len(enum.Arr) != 2 {
		t.Fatalf("expected a 2-member enum, got %+v ok=%v", enum, ok)
	}
}

func TestMergeSchemas_ObjectUnionAndRequiredIntersection(t *testing.T) {
	a := InferSchema(parseVal(t, `{"a":1,"b":"x"}`).Value, Config{RequiredByDefault: true})
	b := InferSchema(parseVal(t, `{"a":2,"c":true}`).Value, Config{RequiredByDefault: true})

	merged := MergeSchemas(a, b, DefaultConfig())
	props, _ := merged.V.Obj.Get("properties")
	if props.Obj.Len() != 3 {
		t.Fatalf("expected union of 3 properties, got %d", props.Obj.Len())
	}
	required, ok := merged.V.Obj.Get("required")
	if !ok {
		t.Fatal("expected a required field")
	}
	if len(required.Arr) != 1 || required.Arr[0].Str != "a" {
		t.Fatalf("expected required=[a] (intersection), got %+v", required.Arr)
	}
}

func TestMergeSchemas_TypeMismatchAnyOf(t *testing.T) {
	a := InferSchema(parseVal(t, `"hello"`).Value, DefaultConfig())
	b := InferSchema(parseVal(t, `true`).Value, DefaultConfig())
	merged := MergeSchemas(a, b, DefaultConfig())
	if _, ok := merged.V.Obj.Get("anyOf"); !ok {
		t.Fatalf("expected anyOf for mismatched types, got %+v", merged.V)
	}
}
