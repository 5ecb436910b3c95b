// Package schema implements spec.md §4.4's pragmatic JSON Schema
// validator: a recursive walk over (value, schema) pairs producing
// path-addressable Diagnostics, plus the default-filling and
// repair-suggestion engines described in the same section.
//
// A Schema is just a value.Value interpreted structurally, per spec.md
// §3 ("Schema: a Value whose structure is interpreted as a schema. No
// separate type."). Keyword lookups go through small accessor helpers in
// this file rather than a parallel struct, so a schema loaded from
// tolerant JSON (for example trailing commas — see pkg/jsonparse) needs no
// extra decoding step.
//
// Keyword naming here is grounded on
// other_examples/1418bed1_kaptinlin-jsonschema__schema.go.go's
// knownSchemaFields set and on
// other_examples/1f2c314c_altshiftab-jsonschema__pkg-types-schema-schema.go.go.
package schema

import "llmstructured/pkg/value"

// Schema wraps a value.Value whose Kind is expected to be KindObject (a
// non-object schema, e.g. `true`/`false`, is tolerated and treated as
// "always passes"/"always fails" per common JSON Schema convention).
type Schema struct {
	V value.Value
}

// New wraps v as a Schema.
func New(v value.Value) Schema { return Schema{V: v} }

// field looks up a schema keyword, returning (zero Value, false) if the
// schema isn't an object or the keyword is absent.
func (s Schema) field(name string) (value.Value, bool) {
	if s.V.Kind != value.KindObject || s.V.Obj == nil {
		return value.Value{}, false
	}
	return s.V.Obj.Get(name)
}

// isBoolTrue reports whether the schema is the literal `true` value (an
// always-passes schema, used as the default additionalProperties/items
// value).
func (s Schema) isBoolTrue() bool  { return s.V.Kind == value.KindBool && s.V.Bool }
func (s Schema) isBoolFalse() bool { return s.V.Kind == value.KindBool && !s.V.Bool }

func (s Schema) types() ([]string, bool) {
	t, ok := s.field("type")
	if !ok {
		return nil, false
	}
	switch t.Kind {
	case value.KindString:
		return []string{t.Str}, true
	case value.KindArray:
		var out []string
		for _, item := range t.Arr {
			if item.Kind == value.KindString {
				out = append(out, item.Str)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func (s Schema) subschema(name string) (Schema, bool) {
	v, ok := s.field(name)
	if !ok {
		return Schema{}, false
	}
	return Schema{V: v}, true
}

func (s Schema) schemaArray(name string) ([]Schema, bool) {
	v, ok := s.field(name)
	if !ok || v.Kind != value.KindArray {
		return nil, false
	}
	out := make([]Schema, len(v.Arr))
	for i, item := range v.Arr {
		out[i] = Schema{V: item}
	}
	return out, true
}

func (s Schema) number(name string) (float64, bool) {
	v, ok := s.field(name)
	if !ok || v.Kind != value.KindNumber {
		return 0, false
	}
	return v.Num, true
}

func (s Schema) str(name string) (string, bool) {
	v, ok := s.field(name)
	if !ok || v.Kind != value.KindString {
		return "", false
	}
	return v.Str, true
}

func (s Schema) stringList(name string) ([]string, bool) {
	v, ok := s.field(name)
	if !ok || v.Kind != value.KindArray {
		return nil, false
	}
	out := make([]string, 0, len(v.Arr))
	for _, item := range v.Arr {
		if item.Kind == value.KindString {
			out = append(out, item.Str)
		}
	}
	return out, true
}
