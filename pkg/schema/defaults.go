package schema

import "llmstructured/pkg/value"

// ApplyDefaults implements spec.md §4.4's pre-validation default-filling:
// for any object schema with `properties`, missing keys whose property
// subschema supplies `default` are injected; it recurses into nested
// properties and array items. Defaults never overwrite keys already
// present. Returns a new Value; v is not mutated.
func ApplyDefaults(v value.Value, s Schema) value.Value {
	if s.isBoolTrue() || s.isBoolFalse() || s.V.Kind != value.KindObject {
		return v.Clone()
	}

	switch v.Kind {
	case value.KindObject:
		return applyObjectDefaults(v, s)
	case value.KindArray:
		return applyArrayDefaults(v, s)
	default:
		return v.Clone()
	}
}

func applyObjectDefaults(v value.Value, s Schema) value.Value {
	out := value.NewObject()
	src := v.Obj
	if src != nil {
		for _, k := range src.Keys() {
			fv, _ := src.Get(k)
			out.Set(k, fv)
		}
	}

	properties, _ := s.field("properties")
	if properties.Kind == value.KindObject {
		for _, k := range properties.Obj.Keys() {
			propSchema, _ := properties.Obj.Get(k)
			ps := Schema{V: propSchema}
			if existing, ok := out.Get(k); ok {
				out.Set(k, ApplyDefaults(existing, ps))
				continue
			}
			if def, ok := ps.field("default"); ok {
				out.Set(k, ApplyDefaults(def, ps))
			}
		}
	}

	return value.FromObject(out)
}

func applyArrayDefaults(v value.Value, s Schema) value.Value {
	itemSchema, ok := s.subschema("items")
	if !ok {
		return v.Clone()
	}
	items := make([]value.Value, len(v.Arr))
	for i, item := range v.Arr {
		items[i] = ApplyDefaults(item, itemSchema)
	}
	return value.Array(items)
}
