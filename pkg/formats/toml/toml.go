// Package toml is the non-core TOML wrapper spec.md §1 lists as an
// external collaborator sharing the JSON core's extract-repair-parse-
// validate shape: here "repair" is a no-op (TOML's grammar is not
// LLM-tolerant by design) and "parse" delegates entirely to
// github.com/BurntSushi/toml, converting its result into pkg/value.Value
// for reuse by pkg/schema.
package toml

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"llmstructured/pkg/value"
)

// Decode parses TOML text into a pkg/value.Value.
func Decode(text string) (value.Value, error) {
	var decoded map[string]any
	if _, err := toml.Decode(text, &decoded); err != nil {
		return value.Value{}, fmt.Errorf("toml: %w", err)
	}
	return fromGo(decoded), nil
}

func fromGo(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(t)
	case int64:
		return value.Number(float64(t))
	case float64:
		return value.Number(t)
	case string:
		return value.String(t)
	case []any:
		items := make([]value.Value, len(t))
		for i, item := range t {
			items[i] = fromGo(item)
		}
		return value.Array(items)
	case map[string]any:
		obj := value.NewObject()
		for _, k := range sortedKeys(t) {
			obj.Set(k, fromGo(t[k]))
		}
		return value.FromObject(obj)
	default:
		return value.String(fmt.Sprintf("%v", t))
	}
}

// sortedKeys gives a deterministic iteration order over a decoded TOML
// table; BurntSushi/toml decodes into a plain Go map, which has no
// recorded source order, so alphabetical is the best a non-core wrapper
// can promise (unlike pkg/formats/yaml, which gets real document order
// from yaml.v3's Node API).
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
