package main

import (
	"os"

	"llmstructured/pkg/extract"
	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/repair"
	"llmstructured/pkg/schema"
	"llmstructured/pkg/value"
)

// loadSchema reads --schema (if set) as tolerant JSON and wraps it as a
// Schema. ok is false when --schema was not given at all, which callers
// treat as "skip validation" rather than an error.
func loadSchema() (schema.Schema, bool, error) {
	if schemaPath == "" {
		return schema.Schema{}, false, nil
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return schema.Schema{}, false, usageErrorf("read schema %s: %w", schemaPath, err)
	}
	res := jsonparse.Parse(string(data), true, repair.FirstWins)
	if res.Err != nil {
		return schema.Schema{}, false, usageErrorf("schema %s is not valid JSON: %v", schemaPath, res.Err)
	}
	return schema.New(res.Value), true, nil
}

// runJSONPipeline runs spec.md §4's extract -> repair -> parse -> validate
// pipeline over text and reports the result as a Value the caller prints.
// tags restricts which fence languages extract.ExtractCandidate looks for
// (DefaultTags for the json subcommand, a single-tag slice for markdown's
// per-block re-use of the same pipeline).
func runJSONPipeline(text string, tags []string) (value.Value, error) {
	out := value.NewObject()
	out.Set("runId", value.String(runID))

	cand, status := extract.ExtractCandidate(text, tags)
	switch status {
	case extract.NotFound:
		out.Set("status", value.String("not_found"))
		return value.FromObject(out), nil
	case extract.Incomplete:
		out.Set("status", value.String("incomplete"))
		return value.FromObject(out), nil
	}
	out.Set("fenced", value.Bool(cand.Fenced))

	cfg := repair.Default()
	repaired, meta := repair.RepairAndFallback(cand.Text, cfg)
	out.Set("repairStepsApplied", stringArray(meta.StepsApplied()))
	out.Set("duplicateKeyCount", value.Number(float64(meta.DuplicateKeyCount)))

	if repairOnly {
		out.Set("status", value.String("repaired"))
		out.Set("repairedText", value.String(repaired))
		return value.FromObject(out), nil
	}

	result := jsonparse.Parse(repaired, cfg.AllowSingleQuotes, cfg.DuplicateKeyPolicy)
	meta.DuplicateKeyCount = result.DuplicateKeyCount
	out.Set("duplicateKeyCount", value.Number(float64(meta.DuplicateKeyCount)))
	if result.Err != nil {
		out.Set("status", value.String("parse_error"))
		out.Set("error", value.String(result.Err.Error()))
		return value.FromObject(out), nil
	}
	out.Set("status", value.String("parsed"))
	out.Set("value", result.Value)

	s, hasSchema, err := loadSchema()
	if err != nil {
		return value.Value{}, err
	}
	if !hasSchema {
		return value.FromObject(out), nil
	}

	filled := schema.ApplyDefaults(result.Value, s)
	repairResult := schema.SuggestRepairs(filled, s, schema.DefaultRepairOptions())
	out.Set("valid", value.Bool(repairResult.Valid))
	out.Set("fullyRepaired", value.Bool(repairResult.FullyRepaired))
	out.Set("repairedValue", repairResult.RepairedValue)
	out.Set("unfixableErrors", diagnosticArray(repairResult.UnfixableErrors))
	return value.FromObject(out), nil
}

func stringArray(ss []string) value.Value {
	items := make([]value.Value, len(ss))
	for i, s := range ss {
		items[i] = value.String(s)
	}
	return value.Array(items)
}

func diagnosticArray(diags []jsonparse.Diagnostic) value.Value {
	items := make([]value.Value, len(diags))
	for i, d := range diags {
		obj := value.NewObject()
		obj.Set("path", value.String(d.Path))
		obj.Set("pointer", value.String(d.JSONPointer))
		obj.Set("message", value.String(d.Message))
		items[i] = value.FromObject(obj)
	}
	return value.Array(items)
}
