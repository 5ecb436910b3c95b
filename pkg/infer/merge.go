package infer

import (
	"llmstructured/pkg/schema"
	"llmstructured/pkg/value"
)

// MergeSchemas implements spec.md §4.7's `mergeSchemas(a, b, config)`:
// same-type schemas merge component-wise (object: union of properties
// with intersected required; array: recurse on items, widen numeric
// bounds; string: widen length bounds, keep shared format, union
// examples); integer+number widens to number; different types either
// become `{anyOf:[a,b]}` (cfg.AllowAnyOf) or a widened type array.
func MergeSchemas(a, b schema.Schema, cfg Config) schema.Schema {
	at, aok := schemaType(a)
	bt, bok := schemaType(b)

	if !aok || !bok || at != bt {
		if isNumericType(at) && isNumericType(bt) && aok && bok {
			return mergeNumber(a, b, "number")
		}
		if cfg.AllowAnyOf {
			return schema.New(objectWith("anyOf", value.Array([]value.Value{a.V, b.V})))
		}
		return schema.New(objectWith("type", value.Array([]value.Value{value.String(at), value.String(bt)})))
	}

	switch at {
	case "object":
		return mergeObject(a, b)
	case "array":
		return mergeArray(a, b, cfg)
	case "string":
		return mergeString(a, b, cfg)
	case "integer", "number":
		return mergeNumber(a, b, at)
	default:
		return a
	}
}

func schemaType(s schema.Schema) (string, bool) {
	v, ok := fieldOf(s, "type")
	if !ok || v.Kind != value.KindString {
		return "", false
	}
	return v.Str, true
}

func isNumericType(t string) bool { return t == "integer" || t == "number" }

func fieldOf(s schema.Schema, name string) (value.Value, bool) {
	if s.V.Kind != value.KindObject || s.V.Obj == nil {
		return value.Value{}, false
	}
	return s.V.Obj.Get(name)
}

func objectWith(key string, v value.Value) value.Value {
	o := value.NewObject()
	o.Set(key, v)
	return value.FromObject(o)
}

func mergeObject(a, b schema.Schema) schema.Schema {
	out := value.NewObject()
	out.Set("type", value.String("object"))

	ap, _ := fieldOf(a, "properties")
	bp, _ := fieldOf(b, "properties")
	props := value.NewObject()

	if ap.Kind == value.KindObject {
		for _, k := range ap.Obj.Keys() {
			av, _ := ap.Obj.Get(k)
			if bp.Kind == value.KindObject {
				if bv, ok := bp.Obj.Get(k); ok {
					merged := MergeSchemas(schema.New(av), schema.New(bv), DefaultConfig())
					props.Set(k, merged.V)
					continue
				}
			}
			props.Set(k, av)
		}
	}
	if bp.Kind == value.KindObject {
		for _, k := range bp.Obj.Keys() {
			if props.Has(k) {
				continue
			}
			bv, _ := bp.Obj.Get(k)
			props.Set(k, bv)
		}
	}
	out.Set("properties", value.FromObject(props))

	ar, _ := fieldOf(a, "required")
	br, _ := fieldOf(b, "required")
	if required := intersectStringArrays(ar, br); len(required) > 0 {
		out.Set("required", value.Array(required))
	}

	if aap, ok := fieldOf(a, "additionalProperties"); ok {
		if bap, ok2 := fieldOf(b, "additionalProperties"); ok2 && aap.Kind == value.KindBool && bap.Kind == value.KindBool {
			out.Set("additionalProperties", value.Bool(aap.Bool && bap.Bool))
		}
	}

	mergeSharedDescription(a, b, out)

	return schema.New(value.FromObject(out))
}

func intersectStringArrays(a, b value.Value) []value.Value {
	if a.Kind != value.KindArray || b.Kind != value.KindArray {
		return nil
	}
	bset := map[string]bool{}
	for _, v := range b.Arr {
		if v.Kind == value.KindString {
			bset[v.Str] = true
		}
	}
	var out []value.Value
	for _, v := range a.Arr {
		if v.Kind == value.KindString && bset[v.Str] {
			out = append(out, v)
		}
	}
	return out
}

func mergeArray(a, b schema.Schema, cfg Config) schema.Schema {
	out := value.NewObject()
	out.Set("type", value.String("array"))

	ai, aok := fieldOf(a, "items")
	bi, bok := fieldOf(b, "items")
	switch {
	case aok && bok:
		out.Set("items", MergeSchemas(schema.New(ai), schema.New(bi), cfg).V)
	case aok:
		out.Set("items", ai)
	case bok:
		out.Set("items", bi)
	}

	widenMinMax(a, b, out, "minItems", "maxItems")
	mergeSharedDescription(a, b, out)
	return schema.New(value.FromObject(out))
}

func mergeString(a, b schema.Schema, cfg Config) schema.Schema {
	out := value.NewObject()
	out.Set("type", value.String("string"))

	widenMinMax(a, b, out, "minLength", "maxLength")

	af, aok := fieldOf(a, "format")
	bf, bok := fieldOf(b, "format")
	if aok && bok && af.Kind == value.KindString && bf.Kind == value.KindString && af.Str == bf.Str {
		out.Set("format", af)
	}

	examples := unionExamples(a, b, cfg.MaxExamples)
	if len(examples) > 0 {
		out.Set("examples", value.Array(examples))
	}

	mergeSharedDescription(a, b, out)
	return schema.New(value.FromObject(out))
}

func mergeNumber(a, b schema.Schema, resultType string) schema.Schema {
	out := value.NewObject()
	out.Set("type", value.String(resultType))

	if amin, ok := fieldOf(a, "minimum"); ok {
		if bmin, ok2 := fieldOf(b, "minimum"); ok2 {
			out.Set("minimum", value.Number(min(amin.Num, bmin.Num)))
		}
	}
	if amax, ok := fieldOf(a, "maximum"); ok {
		if bmax, ok2 := fieldOf(b, "maximum"); ok2 {
			out.Set("maximum", value.Number(max(amax.Num, bmax.Num)))
		}
	}
	mergeSharedDescription(a, b, out)
	return schema.New(value.FromObject(out))
}

func widenMinMax(a, b schema.Schema, out *value.Object, minKey, maxKey string) {
	if amin, ok := fieldOf(a, minKey); ok {
		if bmin, ok2 := fieldOf(b, minKey); ok2 {
			out.Set(minKey, value.Number(min(amin.Num, bmin.Num)))
		}
	}
	if amax, ok := fieldOf(a, maxKey); ok {
		if bmax, ok2 := fieldOf(b, maxKey); ok2 {
			out.Set(maxKey, value.Number(max(amax.Num, bmax.Num)))
		}
	}
}

func unionExamples(a, b schema.Schema, maxExamples int) []value.Value {
	if maxExamples <= 0 {
		return nil
	}
	seen := map[string]bool{}
	var out []value.Value
	add := func(v value.Value) {
		if v.Kind != value.KindArray {
			return
		}
		for _, ex := range v.Arr {
			if ex.Kind == value.KindString && !seen[ex.Str] && len(out) < maxExamples {
				seen[ex.Str] = true
				out = append(out, ex)
			}
		}
	}
	if av, ok := fieldOf(a, "examples"); ok {
		add(av)
	}
	if bv, ok := fieldOf(b, "examples"); ok {
		add(bv)
	}
	return out
}

// mergeSharedDescription preserves `description` when a and b share an
// identical one, per SPEC_FULL.md §3's original_source-derived detail.
func mergeSharedDescription(a, b schema.Schema, out *value.Object) {
	ad, aok := fieldOf(a, "description")
	bd, bok := fieldOf(b, "description")
	if aok && bok && ad.Kind == value.KindString && bd.Kind == value.KindString && ad.Str == bd.Str {
		out.Set("description", ad)
	}
}
