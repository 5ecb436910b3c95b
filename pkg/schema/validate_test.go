package schema

import (
	"testing"

	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/repair"
	"llmstructured/pkg/value"
)

func mustParse(t *testing.T, text string) value.Value {
	t.Helper()
	res := jsonparse.Parse(text, true, repair.FirstWins)
	if res.Err != nil {
		t.Fatalf("parse %q: %v", text, res.Err)
	}
	return res.Value
}

func TestValidate_MissingRequired(t *testing.T) {
	v := mustParse(t, `{"name":"Ada"}`)
	s := New(mustParse(t, `{"type":"object","properties":{"name":{"type":"string"},"age":{"type":"integer"}},"required":["name","age"]}`))

	d := Validate(v, s)
	if d == nil {
		t.Fatal("expected a diagnostic")
	}
	if d.Path != "$.age" || d.Kind != jsonparse.KindSchema {
		t.Fatalf("got path=%s kind=%s", d.Path, d.Kind)
	}
}

func TestValidate_AdditionalPropertiesFalse(t *testing.T) {
	v := mustParse(t, `{"name":"Ada","age":12,"extra":true}`)
	s := New(mustParse(t, `{"type":"object","properties":{"name":{"type":"string"},"age":{"type":"integer"}},"additionalProperties":false}`))

	errs := ValidateAll(v, s)
	if len(errs) != 1 || errs[0].Path != "$.extra" {
		t.Fatalf("got %+v", errs)
	}
}

func TestValidate_CollectAllVsFailFast(t *testing.T) {
	v := mustParse(t, `{}`)
	s := New(mustParse(t, `{"type":"object","required":["a","b","c"]}`))

	all := ValidateAll(v, s)
	if len(all) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %+v", len(all), all)
	}
	if d := Validate(v, s); d == nil || d.Path != "$.a" {
		t.Fatalf("fail-fast should stop at first: %+v", d)
	}
}

func TestValidate_EnumAndConst(t *testing.T) {
	s := New(mustParse(t, `{"enum":["red","green","blue"]}`))
	if d := Validate(value.String("purple"), s); d == nil {
		t.Fatal("expected enum violation")
	}
	if d := Validate(value.String("red"), s); d != nil {
		t.Fatalf("unexpected: %+v", d)
	}
}

func TestValidate_NumberRange(t *testing.T) {
	s := New(mustParse(t, `{"type":"number","minimum":0,"maximum":10}`))
	if d := Validate(value.Number(-1), s); d == nil || d.Message != "number < minimum" {
		t.Fatalf("got %+v", d)
	}
	if d := Validate(value.Number(11), s); d == nil || d.Message != "number > maximum" {
		t.Fatalf("got %+v", d)
	}
	if d := Validate(value.Number(5), s); d != nil {
		t.Fatalf("unexpected: %+v", d)
	}
}

func TestValidate_AnyOfOneOf(t *testing.T) {
	anyOf := New(mustParse(t, `{"anyOf":[{"type":"string"},{"type":"number"}]}`))
	if d := Validate(value.Bool(true), anyOf); d == nil {
		t.Fatal("expected anyOf failure")
	}

	oneOf := New(mustParse(t, `{"oneOf":[{"minimum":0},{"maximum":5}]}`))
	if d := Validate(value.Number(3), oneOf); d == nil {
		t.Fatal("3 matches both subschemas, should fail oneOf")
	}
	if d := Validate(value.Number(-1), oneOf); d != nil {
		t.Fatalf("-1 matches only the maximum branch, should pass: %+v", d)
	}
}

func TestApplyDefaults(t *testing.T) {
	v := mustParse(t, `{"name":"Ada"}`)
	s := New(mustParse(t, `{"type":"object","properties":{"name":{"type":"string"},"age":{"type":"integer","default":0}}}`))

	filled := ApplyDefaults(v, s)
	age, ok := filled.Obj.Get("age")
	if !ok || age.Num != 0 {
		t.Fatalf("expected default age=0, got %+v ok=%v", age, ok)
	}
	name, _ := filled.Obj.Get("name")
	if name.Str != "Ada" {
		t.Fatalf("existing key must survive: %+v", name)
	}
}

func TestApplyDefaults_NeverOverwrites(t *testing.T) {
	v := mustParse(t, `{"age":5}`)
	s := New(mustParse(t, `{"type":"object","properties":{"age":{"type":"integer","default":99}}}`))
	filled := ApplyDefaults(v, s)
	age, _ := filled.Obj.Get("age")
	if age.Num != 5 {
		t.Fatalf("default must not overwrite present key, got %v", age.Num)
	}
}

func TestSuggestRepairs_FillRequiredAndClamp(t *testing.T) {
	v := mustParse(t, `{"score":999}`)
	s := New(mustParse(t, `{"type":"object","properties":{"name":{"type":"string","default":"anon"},"score":{"type":"number","maximum":100}},"required":["name"]}`))

	result := SuggestRepairs(v, s, DefaultRepairOptions())
	if result.Valid {
		t.Fatal("original should be invalid")
	}
	if !result.FullyRepaired {
		t.Fatalf("expected fully repaired, unfixable=%+v", result.UnfixableErrors)
	}
	name, ok := result.RepairedValue.Obj.Get("name")
	if !ok || name.Str != "anon" {
		t.Fatalf("expected filled default name, got %+v", name)
	}
	score, _ := result.RepairedValue.Obj.Get("score")
	if score.Num != 100 {
		t.Fatalf("expected clamped score=100, got %v", score.Num)
	}
}

func TestSuggestRepairs_EnumNearest(t *testing.T) {
	v := mustParse(t, `{"color":"gren"}`)
	s := New(mustParse(t, `{"type":"object","properties":{"color":{"type":"string","enum":["red","green","blue"]}}}`))

	result := SuggestRepairs(v, s, DefaultRepairOptions())
	if !result.FullyRepaired {
		t.Fatalf("unfixable=%+v", result.UnfixableErrors)
	}
	color, _ := result.RepairedValue.Obj.Get("color")
	if color.Str != "green" {
		t.Fatalf("expected nearest-neighbor 'green', got %q", color.Str)
	}
}
