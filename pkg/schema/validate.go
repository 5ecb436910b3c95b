package schema

import (
	"math"
	"regexp"
	"sync"

	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/value"
)

// Mode selects between spec.md §4.4's two validation modes.
type Mode int

const (
	// FailFast stops at the first violated keyword.
	FailFast Mode = iota
	// CollectAll continues past each violation, accumulating every one.
	CollectAll
)

// Validate runs the validator in FailFast mode, returning the first
// Diagnostic found (nil if v conforms to s).
func Validate(v value.Value, s Schema) *jsonparse.Diagnostic {
	errs := run(v, s, jsonparse.RootPath, FailFast)
	if len(errs) == 0 {
		return nil
	}
	return &errs[0]
}

// ValidateAll runs the validator in CollectAll mode, returning every
// Diagnostic found in depth-first, insertion-key order (possibly empty).
func ValidateAll(v value.Value, s Schema) []jsonparse.Diagnostic {
	return run(v, s, jsonparse.RootPath, CollectAll)
}

// ctx carries validation mode and accumulates diagnostics; a found==true
// short-circuit is how FailFast mode stops the depth-first walk early
// without panics or sentinel errors threaded through every return.
type ctx struct {
	mode  Mode
	found []jsonparse.Diagnostic
}

func (c *ctx) fail(d jsonparse.Diagnostic) bool {
	c.found = append(c.found, d)
	return c.mode == FailFast
}

func run(v value.Value, s Schema, path string, mode Mode) []jsonparse.Diagnostic {
	c := &ctx{mode: mode}
	walk(v, s, path, c)
	return c.found
}

// walk applies every keyword s defines to v at path, stopping early in
// FailFast mode as soon as one fails. Returns true if the walk should
// stop (FailFast and something already failed).
func walk(v value.Value, s Schema, path string, c *ctx) bool {
	if s.isBoolFalse() {
		return c.fail(schemaErr("value not permitted", path))
	}
	if s.isBoolTrue() || s.V.Kind != value.KindObject {
		return false
	}

	if cv, ok := s.field("const"); ok {
		if !value.Equal(v, cv) {
			if c.fail(schemaErr("value does not match const", path)) {
				return true
			}
		}
	}

	if ev, ok := s.field("enum"); ok && ev.Kind == value.KindArray {
		match := false
		for _, opt := range ev.Arr {
			if value.Equal(v, opt) {
				match = true
				break
			}
		}
		if !match {
			if c.fail(schemaErr("value not in enum", path)) {
				return true
			}
		}
	}

	if types, ok := s.types(); ok {
		if !matchesAnyType(v, types) {
			if c.fail(typeErr(v, types, path)) {
				return true
			}
			return true
		}
	}

	if stop := walkComposition(v, s, path, c); stop {
		return true
	}

	switch v.Kind {
	case value.KindNumber:
		if stop := walkNumber(v, s, path, c); stop {
			return true
		}
	case value.KindString:
		if stop := walkString(v, s, path, c); stop {
			return true
		}
	case value.KindArray:
		if stop := walkArray(v, s, path, c); stop {
			return true
		}
	case value.KindObject:
		if stop := walkObject(v, s, path, c); stop {
			return true
		}
	}

	return false
}

func walkComposition(v value.Value, s Schema, path string, c *ctx) bool {
	if subs, ok := s.schemaArray("allOf"); ok {
		for _, sub := range subs {
			errs := run(v, sub, path, c.mode)
			for _, e := range errs {
				if c.fail(e) {
					return true
				}
			}
		}
	}
	if subs, ok := s.schemaArray("anyOf"); ok {
		passed := false
		for _, sub := range subs {
			if len(run(v, sub, path, FailFast)) == 0 {
				passed = true
				break
			}
		}
		if !passed {
			if c.fail(schemaErr("value matches none of anyOf", path)) {
				return true
			}
		}
	}
	if subs, ok := s.schemaArray("oneOf"); ok {
		count := 0
		for _, sub := range subs {
			if len(run(v, sub, path, FailFast)) == 0 {
				count++
			}
		}
		if count != 1 {
			if c.fail(schemaErr("value must match exactly one of oneOf", path)) {
				return true
			}
		}
	}
	if ifSub, ok := s.subschema("if"); ok {
		ifPassed := len(run(v, ifSub, path, FailFast)) == 0
		if ifPassed {
			if thenSub, ok := s.subschema("then"); ok {
				errs := run(v, thenSub, path, c.mode)
				for _, e := range errs {
					if c.fail(e) {
						return true
					}
				}
			}
		} else if elseSub, ok := s.subschema("else"); ok {
			errs := run(v, elseSub, path, c.mode)
			for _, e := range errs {
				if c.fail(e) {
					return true
				}
			}
		}
	}
	return false
}

func walkNumber(v value.Value, s Schema, path string, c *ctx) bool {
	if min, ok := s.number("minimum"); ok && v.Num < min {
		if c.fail(schemaErr("number < minimum", path)) {
			return true
		}
	}
	if max, ok := s.number("maximum"); ok && v.Num > max {
		if c.fail(schemaErr("number > maximum", path)) {
			return true
		}
	}
	if mult, ok := s.number("multipleOf"); ok && mult != 0 {
		ratio := v.Num / mult
		if math.Abs(ratio-math.Round(ratio)) > 1e-9 {
			if c.fail(schemaErr("number is not a multiple of multipleOf", path)) {
				return true
			}
		}
	}
	return false
}

func walkString(v value.Value, s Schema, path string, c *ctx) bool {
	n := len([]rune(v.Str))
	if min, ok := s.number("minLength"); ok && n < int(min) {
		if c.fail(schemaErr("string shorter than minLength", path)) {
			return true
		}
	}
	if max, ok := s.number("maxLength"); ok && n > int(max) {
		if c.fail(schemaErr("string longer than maxLength", path)) {
			return true
		}
	}
	if pat, ok := s.str("pattern"); ok {
		re, err := compileCached(pat)
		if err == nil && !re.MatchString(v.Str) {
			if c.fail(schemaErr("string does not match pattern", path)) {
				return true
			}
		}
	}
	if format, ok := s.str("format"); ok {
		if re, known := formatRegexes[format]; known && !re.MatchString(v.Str) {
			if c.fail(schemaErr("string does not match format "+format, path)) {
				return true
			}
		}
	}
	return false
}

func walkArray(v value.Value, s Schema, path string, c *ctx) bool {
	if min, ok := s.number("minItems"); ok && len(v.Arr) < int(min) {
		if c.fail(schemaErr("array shorter than minItems", path)) {
			return true
		}
	}
	if max, ok := s.number("maxItems"); ok && len(v.Arr) > int(max) {
		if c.fail(schemaErr("array longer than maxItems", path)) {
			return true
		}
	}
	if itemSchema, ok := s.subschema("items"); ok {
		for i, item := range v.Arr {
			errs := run(item, itemSchema, jsonparse.AppendIndex(path, i), c.mode)
			for _, e := range errs {
				if c.fail(e) {
					return true
				}
			}
		}
	}
	if containsSchema, ok := s.subschema("contains"); ok {
		matches := 0
		for _, item := range v.Arr {
			if len(run(item, containsSchema, path, FailFast)) == 0 {
				matches++
			}
		}
		minContains := 1
		if m, ok := s.number("minContains"); ok {
			minContains = int(m)
		}
		if matches < minContains {
			if c.fail(schemaErr("array does not contain enough matching items", path)) {
				return true
			}
		}
		if maxContains, ok := s.number("maxContains"); ok && matches > int(maxContains) {
			if c.fail(schemaErr("array contains too many matching items", path)) {
				return true
			}
		}
	}
	return false
}

func walkObject(v value.Value, s Schema, path string, c *ctx) bool {
	obj := v.Obj
	if obj == nil {
		return false
	}
	keys := obj.Keys()

	if min, ok := s.number("minProperties"); ok && len(keys) < int(min) {
		if c.fail(schemaErr("object has fewer than minProperties", path)) {
			return true
		}
	}
	if max, ok := s.number("maxProperties"); ok && len(keys) > int(max) {
		if c.fail(schemaErr("object has more than maxProperties", path)) {
			return true
		}
	}

	if required, ok := s.stringList("required"); ok {
		for _, req := range required {
			if !obj.Has(req) {
				if c.fail(schemaErr("missing required property: "+req, jsonparse.AppendKey(path, req))) {
					return true
				}
			}
		}
	}

	if depReq, ok := s.field("dependentRequired"); ok && depReq.Kind == value.KindObject {
		for _, trigger := range depReq.Obj.Keys() {
			if !obj.Has(trigger) {
				continue
			}
			list, _ := depReq.Obj.Get(trigger)
			for _, req := range list.Arr {
				if req.Kind == value.KindString && !obj.Has(req.Str) {
					if c.fail(schemaErr("missing dependent required property: "+req.Str, jsonparse.AppendKey(path, req.Str))) {
						return true
					}
				}
			}
		}
	}

	if propNames, ok := s.subschema("propertyNames"); ok {
		for _, k := range keys {
			errs := run(value.String(k), propNames, jsonparse.AppendBracket(path, k), c.mode)
			for _, e := range errs {
				if c.fail(e) {
					return true
				}
			}
		}
	}

	properties, _ := s.field("properties")
	matched := make(map[string]bool, len(keys))
	if properties.Kind == value.KindObject {
		for _, k := range properties.Obj.Keys() {
			propSchema, _ := properties.Obj.Get(k)
			if fv, ok := obj.Get(k); ok {
				matched[k] = true
				errs := run(fv, Schema{V: propSchema}, jsonparse.AppendKey(path, k), c.mode)
				for _, e := range errs {
					if c.fail(e) {
						return true
					}
				}
			}
		}
	}

	if additional, ok := s.field("additionalProperties"); ok {
		switch additional.Kind {
		case value.KindBool:
			if !additional.Bool {
				for _, k := range keys {
					if !matched[k] {
						if c.fail(schemaErr("additional property not allowed: "+k, jsonparse.AppendKey(path, k))) {
							return true
						}
					}
				}
			}
		case value.KindObject:
			extraSchema := Schema{V: additional}
			for _, k := range keys {
				if matched[k] {
					continue
				}
				fv, _ := obj.Get(k)
				errs := run(fv, extraSchema, jsonparse.AppendKey(path, k), c.mode)
				for _, e := range errs {
					if c.fail(e) {
						return true
					}
				}
			}
		}
	}

	return false
}

func matchesAnyType(v value.Value, types []string) bool {
	for _, t := range types {
		if matchesType(v, t) {
			return true
		}
	}
	return false
}

func matchesType(v value.Value, t string) bool {
	switch t {
	case "integer":
		return v.IsInteger()
	case "number":
		return v.Kind == value.KindNumber
	case "string":
		return v.Kind == value.KindString
	case "boolean":
		return v.Kind == value.KindBool
	case "array":
		return v.Kind == value.KindArray
	case "object":
		return v.Kind == value.KindObject
	case "null":
		return v.Kind == value.KindNull
	default:
		return false
	}
}

func schemaErr(message, path string) jsonparse.Diagnostic {
	return jsonparse.Diagnostic{Message: message, Path: path, Kind: jsonparse.KindSchema, JSONPointer: jsonparse.Pointer(path)}
}

func typeErr(v value.Value, types []string, path string) jsonparse.Diagnostic {
	return jsonparse.Diagnostic{
		Message:     "value of type " + v.TypeName() + " does not match expected type",
		Path:        path,
		Kind:        jsonparse.KindType,
		JSONPointer: jsonparse.Pointer(path),
	}
}

var (
	formatRegexes = map[string]*regexp.Regexp{
		"email":     regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
		"uuid":      regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`),
		"date-time": regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}:\d{2}(\.\d+)?([Zz]|[+-]\d{2}:\d{2})$`),
	}

	patternCacheMu sync.Mutex
	patternCache   = map[string]*regexp.Regexp{}
)

func compileCached(pattern string) (*regexp.Regexp, error) {
	patternCacheMu.Lock()
	defer patternCacheMu.Unlock()
	if re, ok := patternCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache[pattern] = re
	return re, nil
}
