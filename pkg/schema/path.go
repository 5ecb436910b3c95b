package schema

import (
	"strconv"
	"strings"

	"llmstructured/pkg/value"
)

// segments splits a JSONPath-ish diagnostic path ("$.a.b[0]") into its
// dotted/bracketed parts, dropping the leading "$". Array indices parse as
// ints; named bracket segments (e.g. "$.headings[Intro]") are returned as
// string keys with isIndex=false.
type pathSeg struct {
	key     string
	idx     int
	isIndex bool
}

func segments(path string) []pathSeg {
	rest := strings.TrimPrefix(path, "$")
	var out []pathSeg
	i := 0
	for i < len(rest) {
		switch rest[i] {
		case '.':
			i++
		case '[':
			end := strings.IndexByte(rest[i:], ']')
			if end < 0 {
				i = len(rest)
				continue
			}
			seg := rest[i+1 : i+end]
			if n, err := strconv.Atoi(seg); err == nil {
				out = append(out, pathSeg{idx: n, isIndex: true})
			} else {
				out = append(out, pathSeg{key: seg})
			}
			i += end + 1
		default:
			end := i
			for end < len(rest) && rest[end] != '.' && rest[end] != '[' {
				end++
			}
			out = append(out, pathSeg{key: rest[i:end]})
			i = end
		}
	}
	return out
}

// valueAtPath walks root to the Value addressed by path.
func valueAtPath(root value.Value, path string) (value.Value, bool) {
	cur := root
	for _, seg := range segments(path) {
		if seg.isIndex {
			if cur.Kind != value.KindArray || seg.idx < 0 || seg.idx >= len(cur.Arr) {
				return value.Value{}, false
			}
			cur = cur.Arr[seg.idx]
			continue
		}
		if cur.Kind != value.KindObject || cur.Obj == nil {
			return value.Value{}, false
		}
		v, ok := cur.Obj.Get(seg.key)
		if !ok {
			return value.Value{}, false
		}
		cur = v
	}
	return cur, true
}

// schemaAtPath walks s's `properties`/`items` tree in step with path,
// mirroring the validator's own traversal (walkObject/walkArray): each
// object segment descends into `properties[key]`, each array segment
// descends into `items`.
func schemaAtPath(s Schema, path string) *Schema {
	cur := s
	for _, seg := range segments(path) {
		if seg.isIndex {
			next, ok := cur.subschema("items")
			if !ok {
				return nil
			}
			cur = next
			continue
		}
		properties, ok := cur.field("properties")
		if !ok || properties.Kind != value.KindObject {
			return nil
		}
		fieldSchema, ok := properties.Obj.Get(seg.key)
		if !ok {
			return nil
		}
		cur = Schema{V: fieldSchema}
	}
	return &cur
}

// setAtPath returns a copy of root with the Value at path replaced by v.
// Missing intermediate containers are not created — callers only use this
// for paths ValidateAll already confirmed exist (the required-property
// case creates the final segment, since that's precisely the missing key).
func setAtPath(root value.Value, path string, v value.Value) value.Value {
	segs := segments(path)
	if len(segs) == 0 {
		return v
	}
	return setAtSegs(root, segs, v)
}

func setAtSegs(cur value.Value, segs []pathSeg, v value.Value) value.Value {
	seg := segs[0]
	rest := segs[1:]

	if seg.isIndex {
		if cur.Kind != value.KindArray {
			return cur
		}
		items := make([]value.Value, len(cur.Arr))
		copy(items, cur.Arr)
		if seg.idx < 0 || seg.idx >= len(items) {
			return cur
		}
		if len(rest) == 0 {
			items[seg.idx] = v
		} else {
			items[seg.idx] = setAtSegs(items[seg.idx], rest, v)
		}
		return value.Array(items)
	}

	var obj *value.Object
	if cur.Kind == value.KindObject && cur.Obj != nil {
		obj = cur.Obj.Clone()
	} else {
		obj = value.NewObject()
	}
	if len(rest) == 0 {
		obj.Set(seg.key, v)
	} else {
		child, _ := obj.Get(seg.key)
		obj.Set(seg.key, setAtSegs(child, rest, v))
	}
	return value.FromObject(obj)
}
