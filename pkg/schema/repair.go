package schema

import (
	"strconv"

	"github.com/agnivade/levenshtein"

	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/value"
)

// SuggestionKind classifies the repair a Suggestion proposes.
type SuggestionKind int

const (
	SuggestTypeCoercion SuggestionKind = iota
	SuggestFillRequired
	SuggestClampRange
	SuggestTruncateLength
	SuggestEnumNearest
	SuggestRemoveExtra
)

// Suggestion is one proposed fix for a single Diagnostic, per spec.md
// §4.4's repair-suggestion engine.
type Suggestion struct {
	Diagnostic  jsonparse.Diagnostic
	Kind        SuggestionKind
	Path        string
	Proposed    value.Value
	AutoFixable bool
}

// RepairOptions configures which suggestion kinds are allowed to mutate
// the value (e.g. truncation is destructive enough some callers opt out).
type RepairOptions struct {
	TruncateOverlong bool
}

// DefaultRepairOptions enables every suggestion kind.
func DefaultRepairOptions() RepairOptions { return RepairOptions{TruncateOverlong: true} }

// RepairResult is spec.md §4.4's repair-suggestion engine output.
type RepairResult struct {
	Valid           bool
	FullyRepaired   bool
	RepairedValue   value.Value
	Suggestions     []Suggestion
	UnfixableErrors []jsonparse.Diagnostic
}

// SuggestRepairs validates v against s, then proposes a fix for each
// Diagnostic found. It never mutates v; RepairedValue is a fresh copy with
// auto-fixable suggestions applied.
func SuggestRepairs(v value.Value, s Schema, opts RepairOptions) RepairResult {
	diags := ValidateAll(v, s)
	if len(diags) == 0 {
		return RepairResult{Valid: true, FullyRepaired: true, RepairedValue: v.Clone()}
	}

	repaired := v.Clone()
	result := RepairResult{}
	for _, d := range diags {
		sug, ok := proposeFix(v, d, s, opts)
		if !ok {
			result.UnfixableErrors = append(result.UnfixableErrors, d)
			continue
		}
		result.Suggestions = append(result.Suggestions, sug)
		if sug.AutoFixable {
			repaired = setAtPath(repaired, sug.Path, sug.Proposed)
		}
	}

	result.RepairedValue = repaired
	result.FullyRepaired = len(result.UnfixableErrors) == 0
	if result.FullyRepaired {
		result.Valid = len(ValidateAll(result.RepairedValue, s)) == 0
	}
	return result
}

func proposeFix(root value.Value, d jsonparse.Diagnostic, s Schema, opts RepairOptions) (Suggestion, bool) {
	sub := schemaAtPath(s, d.Path)

	switch d.Kind {
	case jsonparse.KindType:
		if sub == nil {
			return Suggestion{}, false
		}
		got, ok := valueAtPath(root, d.Path)
		if !ok {
			return Suggestion{}, false
		}
		if coerced, ok := CoerceValue(got, *sub); ok {
			return Suggestion{Diagnostic: d, Kind: SuggestTypeCoercion, Path: d.Path, Proposed: coerced, AutoFixable: true}, true
		}
		return Suggestion{}, false
	case jsonparse.KindSchema:
		if hasPrefix(d.Message, "missing required property: ") {
			// d.Path points at the missing field itself (schemaAtPath
			// resolves straight to its "properties" subschema), so the
			// default, if any, lives directly on sub.
			if sub == nil {
				return Suggestion{}, false
			}
			def, ok := sub.field("default")
			if !ok {
				return Suggestion{}, false
			}
			return Suggestion{Diagnostic: d, Kind: SuggestFillRequired, Path: d.Path, Proposed: def, AutoFixable: true}, true
		}
		if sub == nil {
			return Suggestion{}, false
		}
		return proposeSchemaFix(root, d, *sub, opts)
	default:
		return Suggestion{}, false
	}
}

func proposeSchemaFix(root value.Value, d jsonparse.Diagnostic, s Schema, opts RepairOptions) (Suggestion, bool) {
	switch {
	case hasPrefix(d.Message, "number < minimum"):
		if min, ok := s.number("minimum"); ok {
			return Suggestion{Diagnostic: d, Kind: SuggestClampRange, Path: d.Path, Proposed: value.Number(min), AutoFixable: true}, true
		}
	case hasPrefix(d.Message, "number > maximum"):
		if max, ok := s.number("maximum"); ok {
			return Suggestion{Diagnostic: d, Kind: SuggestClampRange, Path: d.Path, Proposed: value.Number(max), AutoFixable: true}, true
		}
	case hasPrefix(d.Message, "string longer than maxLength"):
		if !opts.TruncateOverlong {
			return Suggestion{}, false
		}
		if max, ok := s.number("maxLength"); ok {
			got, ok := valueAtPath(root, d.Path)
			if !ok || got.Kind != value.KindString {
				return Suggestion{}, false
			}
			r := []rune(got.Str)
			if int(max) <= len(r) {
				return Suggestion{Diagnostic: d, Kind: SuggestTruncateLength, Path: d.Path, Proposed: value.String(string(r[:int(max)])), AutoFixable: true}, true
			}
		}
	case hasPrefix(d.Message, "array longer than maxItems"):
		if !opts.TruncateOverlong {
			return Suggestion{}, false
		}
		if max, ok := s.number("maxItems"); ok {
			got, ok := valueAtPath(root, d.Path)
			if !ok || got.Kind != value.KindArray {
				return Suggestion{}, false
			}
			if int(max) <= len(got.Arr) {
				return Suggestion{Diagnostic: d, Kind: SuggestTruncateLength, Path: d.Path, Proposed: value.Array(got.Arr[:int(max)]), AutoFixable: true}, true
			}
		}
	case hasPrefix(d.Message, "value not in enum"):
		got, ok := valueAtPath(root, d.Path)
		if !ok || got.Kind != value.KindString {
			return Suggestion{}, false
		}
		nearest, ok := EnumNearest(got.Str, s)
		if !ok {
			return Suggestion{}, false
		}
		return Suggestion{Diagnostic: d, Kind: SuggestEnumNearest, Path: d.Path, Proposed: value.String(nearest), AutoFixable: true}, true

	case hasPrefix(d.Message, "additional property not allowed: "):
		return Suggestion{Diagnostic: d, Kind: SuggestRemoveExtra, Path: d.Path, Proposed: value.Value{}, AutoFixable: false}, true
	}
	return Suggestion{}, false
}

// EnumNearest proposes the closest enum member to got by Levenshtein
// distance, per spec.md §4.4.
func EnumNearest(got string, s Schema) (string, bool) {
	ev, ok := s.field("enum")
	if !ok || ev.Kind != value.KindArray {
		return "", false
	}
	best := ""
	bestDist := -1
	for _, opt := range ev.Arr {
		if opt.Kind != value.KindString {
			continue
		}
		d := levenshtein.ComputeDistance(got, opt.Str)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = opt.Str
		}
	}
	return best, bestDist >= 0
}

// CoerceValue attempts the type-coercion spec.md §4.4 describes
// ("123"->123, "true"->true, etc.) for v against the first type in s's
// type list that v's string form round-trips into losslessly.
func CoerceValue(v value.Value, s Schema) (value.Value, bool) {
	types, ok := s.types()
	if !ok || len(types) == 0 || v.Kind != value.KindString {
		return value.Value{}, false
	}
	for _, t := range types {
		switch t {
		case "integer", "number":
			if n, err := strconv.ParseFloat(v.Str, 64); err == nil {
				return value.Number(n), true
			}
		case "boolean":
			switch v.Str {
			case "true":
				return value.Bool(true), true
			case "false":
				return value.Bool(false), true
			}
		}
	}
	return value.Value{}, false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
