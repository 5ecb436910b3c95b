// Package infer implements spec.md §4.7's schema inference engine:
// deriving a schema from one example value, merging schemas pairwise
// across many values, and detecting shared string formats/enums.
//
// Schema construction reuses pkg/schema's keyword names directly so an
// inferred schema is immediately consumable by pkg/schema.Validate,
// grounded on
// other_examples/1418bed1_kaptinlin-jsonschema__schema.go.go's field set.
package infer

import (
	"math"
	"regexp"

	"llmstructured/pkg/schema"
	"llmstructured/pkg/value"
)

// Config controls how much inferred schemas constrain beyond bare type
// information, per spec.md §4.7.
type Config struct {
	IncludeDefault          bool
	BoundNumbers            bool // minimum=maximum=v for scalars
	BoundStringLength       bool // minLength=maxLength=len(v)
	BoundArrayLength        bool // minItems=maxItems=len(v)
	RequiredByDefault       bool // object: required = all observed keys
	StrictAdditionalProps   bool // object: additionalProperties:false
	DetectFormats           bool // string: date-time/date/time/email/uri/uuid/ipv4/hostname
	DetectEnums             bool // inferSchemaFromValues: attach enum when it qualifies
	MaxEnumValues           int
	AllowAnyOf              bool // mergeSchemas: fall back to anyOf on type mismatch
	MaxExamples             int
}

// DefaultConfig mirrors a conservative, additive-only inference: bare
// types plus format detection, no bounds or required-by-default (those
// over-constrain a schema meant to accept future similar values).
func DefaultConfig() Config {
	return Config{DetectFormats: true, DetectEnums: true, MaxEnumValues: 10, MaxExamples: 5, AllowAnyOf: true}
}

// InferSchema implements spec.md §4.7's `inferSchema(value, config)`.
func InferSchema(v value.Value, cfg Config) schema.Schema {
	obj := value.NewObject()
	switch v.Kind {
	case value.KindNull:
		obj.Set("type", value.String("null"))
	case value.KindBool:
		obj.Set("type", value.String("boolean"))
	case value.KindNumber:
		if v.IsInteger() && math.Abs(v.Num) < (1<<53) {
			obj.Set("type", value.String("integer"))
		} else {
			obj.Set("type", value.String("number"))
		}
		if cfg.BoundNumbers {
			obj.Set("minimum", value.Number(v.Num))
			obj.Set("maximum", value.Number(v.Num))
		}
	case value.KindString:
		obj.Set("type", value.String("string"))
		if cfg.DetectFormats {
			if format, ok := detectFormat(v.Str); ok {
				obj.Set("format", value.String(format))
			}
		}
		if cfg.BoundStringLength {
			n := value.Number(float64(len([]rune(v.Str))))
			obj.Set("minLength", n)
			obj.Set("maxLength", n)
		}
	case value.KindArray:
		obj.Set("type", value.String("array"))
		if len(v.Arr) > 0 {
			itemSchema := InferSchema(v.Arr[0], cfg)
			for _, item := range v.Arr[1:] {
				itemSchema = MergeSchemas(itemSchema, InferSchema(item, cfg), cfg)
			}
			obj.Set("items", itemSchema.V)
		}
		if cfg.BoundArrayLength {
			n := value.Number(float64(len(v.Arr)))
			obj.Set("minItems", n)
			obj.Set("maxItems", n)
		}
	case value.KindObject:
		obj.Set("type", value.String("object"))
		if v.Obj != nil {
			props := value.NewObject()
			var required []value.Value
			for _, k := range v.Obj.Keys() {
				fv, _ := v.Obj.Get(k)
				props.Set(k, InferSchema(fv, cfg).V)
				required = append(required, value.String(k))
			}
			obj.Set("properties", value.FromObject(props))
			if cfg.RequiredByDefault {
				obj.Set("required", value.Array(required))
			}
		}
		if cfg.StrictAdditionalProps {
			obj.Set("additionalProperties", value.Bool(false))
		}
	}

	if cfg.IncludeDefault {
		obj.Set("default", v)
	}

	return schema.New(value.FromObject(obj))
}

// InferSchemaFromValues implements spec.md §4.7's
// `inferSchemaFromValues(values, config)`: reduce via MergeSchemas, then
// attach `enum` when every input is a string, there are at most
// MaxEnumValues distinct values, and at least one repeats.
func InferSchemaFromValues(values []value.Value, cfg Config) schema.Schema {
	if len(values) == 0 {
		return schema.New(value.Value{Kind: value.KindObject, Obj: value.NewObject()})
	}

	merged := InferSchema(values[0], cfg)
	for _, v := range values[1:] {
		merged = MergeSchemas(merged, InferSchema(v, cfg), cfg)
	}

	if cfg.DetectEnums {
		if enum, ok := detectEnum(values, cfg.MaxEnumValues); ok {
			obj := merged.V.Obj.Clone()
			obj.Set("enum", value.Array(enum))
			merged = schema.New(value.FromObject(obj))
		}
	}

	return merged
}

func detectEnum(values []value.Value, maxDistinct int) ([]value.Value, bool) {
	seen := map[string]bool{}
	order := []value.Value{}
	dup := false
	for _, v := range values {
		if v.Kind != value.KindString {
			return nil, false
		}
		if seen[v.Str] {
			dup = true
			continue
		}
		seen[v.Str] = true
		order = append(order, v)
	}
	if !dup || len(order) > maxDistinct {
		return nil, false
	}
	return order, true
}

var formatDetectors = []struct {
	name string
	re   *regexp.Regexp
}{
	{"date-time", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})$`)},
	{"date", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)},
	{"time", regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?$`)},
	{"email", regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)},
	{"uuid", regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)},
	{"ipv4", regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)},
	{"uri", regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://\S+$`)},
	{"hostname", regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)},
}

func detectFormat(s string) (string, bool) {
	for _, d := range formatDetectors {
		if d.re.MatchString(s) {
			return d.name, true
		}
	}
	return "", false
}
