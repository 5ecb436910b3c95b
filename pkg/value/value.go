// Package value implements the tagged-union data model shared by every
// component of llmstructured: the tolerant parser produces Values, schemas
// are Values interpreted structurally, and the canonical serializer turns a
// Value back into deterministic JSON text.
package value

import (
	"fmt"
	"math"
)

// Kind identifies which alternative of the tagged union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged sum over the JSON data model: null, bool, number,
// string, array and object. Only one of the typed fields is meaningful for
// a given Kind; Obj is always an *Object so object key order survives
// copies.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
	Arr  []Value
	Obj  *Object
}

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number wraps a float64.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// String wraps a string.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Array wraps a slice of Values.
func Array(items []Value) Value { return Value{Kind: KindArray, Arr: items} }

// FromObject wraps an *Object.
func FromObject(o *Object) Value { return Value{Kind: KindObject, Obj: o} }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsInteger reports whether v is a number whose value has no fractional
// part. Integer-ness is a predicate over Number, never a separate Kind, per
// the data-model invariant that Numbers compare purely by numeric equality.
func (v Value) IsInteger() bool {
	if v.Kind != KindNumber {
		return false
	}
	return v.Num == float64(int64(v.Num)) && !isNonFinite(v.Num)
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// TypeName returns the JSON Schema type name for v ("integer" is never
// returned here — callers check IsInteger() separately, matching spec's
// "integer-ness is a predicate, not a tag").
func (v Value) TypeName() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Equal reports deep, canonical equality between a and b. Numbers compare
// by numeric equality (not bit pattern); objects compare by key/value
// content regardless of insertion order (order is a serialization concern,
// not an equality concern, except where duplicate-key policy already
// resolved which value survives).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		// integer/number are the same Kind already; nothing to special-case.
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Num == b.Num
	case KindString:
		return a.Str == b.Str
	case KindArray:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !Equal(a.Arr[i], b.Arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.Obj == nil || b.Obj == nil {
			return a.Obj == b.Obj
		}
		if len(a.Obj.keys) != len(b.Obj.keys) {
			return false
		}
		for _, k := range a.Obj.keys {
			av, _ := a.Obj.Get(k)
			bv, ok := b.Obj.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Object is an insertion-ordered string-keyed map. It is the only mutable
// container in the data model; Values hold a pointer to one so copying a
// Value is cheap (matches spec.md §9's "keep arrays and objects by-move to
// avoid deep copies in hot paths" — Go can't move, but a pointer gets the
// same effect).
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty, ready-to-use Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set inserts or overwrites key. First-seen order is preserved: setting an
// already-present key updates its value but not its position.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Delete removes key, preserving the relative order of remaining keys.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in first-insertion order. The returned slice is
// owned by the caller (a copy), so mutating it does not affect o.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len reports the number of properties.
func (o *Object) Len() int { return len(o.keys) }

// Clone produces a deep copy of o.
func (o *Object) Clone() *Object {
	clone := NewObject()
	for _, k := range o.keys {
		clone.Set(k, o.values[k].Clone())
	}
	return clone
}

// Clone produces a deep copy of v.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindArray:
		items := make([]Value, len(v.Arr))
		for i, item := range v.Arr {
			items[i] = item.Clone()
		}
		return Value{Kind: KindArray, Arr: items}
	case KindObject:
		if v.Obj == nil {
			return v
		}
		return Value{Kind: KindObject, Obj: v.Obj.Clone()}
	default:
		return v
	}
}

// GoString provides a debug representation used by test failure output.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{Kind:%s}", v.Kind)
}
