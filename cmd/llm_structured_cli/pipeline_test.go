package main

import (
	"testing"

	"llmstructured/pkg/extract"
	"llmstructured/pkg/value"
)

func TestRunJSONPipeline_FencedObject(t *testing.T) {
	text := "Sure, here you go:\n```json\n{name: 'Ada', age: 12,}\n```\n"
	result, err := runJSONPipeline(text, extract.DefaultTags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, _ := result.Obj.Get("status")
	if status.Str != "parsed" {
		t.Fatalf("expected status=parsed, got %+v", result)
	}
	steps, _ := result.Obj.Get("repairStepsApplied")
	if len(steps.Arr) == 0 {
		t.Fatalf("expected at least one repair step applied, got none")
	}
	parsed, _ := result.Obj.Get("value")
	name, _ := parsed.Obj.Get("name")
	if name.Str != "Ada" {
		t.Fatalf("expected name=Ada, got %+v", parsed)
	}
}

func TestRunJSONPipeline_NotFound(t *testing.T) {
	result, err := runJSONPipeline("just some prose, nothing structured here", extract.DefaultTags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, _ := result.Obj.Get("status")
	if status.Str != "not_found" {
		t.Fatalf("expected status=not_found, got %+v", result)
	}
}

func TestExitErrIfInvalid(t *testing.T) {
	obj := value.NewObject()
	obj.Set("status", value.String("parsed"))
	obj.Set("valid", value.Bool(false))
	if err := exitErrIfInvalid(value.FromObject(obj)); err == nil {
		t.Fatal("expected an error for valid=false")
	}

	obj2 := value.NewObject()
	obj2.Set("status", value.String("parsed"))
	if err := exitErrIfInvalid(value.FromObject(obj2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
