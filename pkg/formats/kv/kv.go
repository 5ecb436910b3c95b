// Package kv is the non-core key-value wrapper spec.md §1 lists as an
// external collaborator sharing the JSON core's shape: "schemas are JSON
// values; parsed results convert into the same value model; validation
// reuses the JSON validator." It parses a flat "KEY=VALUE" per-line
// format directly into pkg/value.Value, the same target spec.md §4.2
// step 4's convertKVObjectToJSON heuristic produces when it fires inside
// the JSON repair pipeline — this package is that same grammar promoted
// to a first-class format instead of a repair-step side effect.
package kv

import (
	"fmt"
	"strconv"
	"strings"

	"llmstructured/pkg/value"
)

// Decode parses text as a sequence of "KEY=VALUE" lines (blank lines and
// lines starting with "#" are skipped; any other line without "=" after a
// non-empty key is an error) into an object Value. Bare true/false/
// null/number tokens are coerced to their JSON-equivalent type; quoted
// values (single or double) have their quotes stripped; anything else is
// kept as a string.
func Decode(text string) (value.Value, error) {
	obj := value.NewObject()
	for lineNo, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		idx := strings.Index(trimmed, "=")
		if idx <= 0 {
			return value.Value{}, fmt.Errorf("kv: line %d missing '=': %q", lineNo+1, line)
		}
		key := strings.TrimSpace(trimmed[:idx])
		if key == "" {
			return value.Value{}, fmt.Errorf("kv: line %d has an empty key", lineNo+1)
		}
		obj.Set(key, coerce(strings.TrimSpace(trimmed[idx+1:])))
	}
	return value.FromObject(obj), nil
}

func coerce(raw string) value.Value {
	switch raw {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	case "null", "":
		return value.Null()
	}
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return value.String(raw[1 : len(raw)-1])
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return value.Number(n)
	}
	return value.String(raw)
}

// Encode renders a flat object Value back as "KEY=VALUE" lines, quoting
// string values that contain whitespace or "=".
func Encode(v value.Value) (string, error) {
	if v.Kind != value.KindObject || v.Obj == nil {
		return "", fmt.Errorf("kv: can only encode an object, got %s", v.TypeName())
	}
	var b strings.Builder
	for _, k := range v.Obj.Keys() {
		fv, _ := v.Obj.Get(k)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(encodeScalar(fv))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func encodeScalar(v value.Value) string {
	switch v.Kind {
	case value.KindNull:
		return "null"
	case value.KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case value.KindNumber:
		return value.DumpsJSON(v)
	case value.KindString:
		if strings.ContainsAny(v.Str, " \t=") {
			return `"` + v.Str + `"`
		}
		return v.Str
	default:
		return value.DumpsJSON(v)
	}
}
