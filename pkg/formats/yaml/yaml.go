// Package yaml is the non-core YAML wrapper spec.md §1 describes as an
// external collaborator: "schemas are JSON values; parsed results convert
// into the same value model; validation reuses the JSON validator." It
// decodes YAML into pkg/value.Value and lets callers validate the result
// with pkg/schema exactly as they would a JSON document.
//
// Decoding uses gopkg.in/yaml.v3's Node API rather than a bare
// `interface{}` target specifically to preserve mapping key order —
// v3's MappingNode walks keys in document order, where decoding straight
// to `map[string]interface{}` would lose it, violating the ordered-object
// invariant pkg/value.Object exists to guarantee.
package yaml

import (
	"fmt"

	yamlv3 "gopkg.in/yaml.v3"

	"llmstructured/pkg/value"
)

// Decode parses a single YAML document into a pkg/value.Value.
func Decode(text string) (value.Value, error) {
	var node yamlv3.Node
	if err := yamlv3.Unmarshal([]byte(text), &node); err != nil {
		return value.Value{}, fmt.Errorf("yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return value.Null(), nil
	}
	return nodeToValue(node.Content[0])
}

func nodeToValue(n *yamlv3.Node) (value.Value, error) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return nodeToValue(n.Content[0])
	case yamlv3.ScalarNode:
		return scalarToValue(n)
	case yamlv3.SequenceNode:
		items := make([]value.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.Array(items), nil
	case yamlv3.MappingNode:
		obj := value.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			v, err := nodeToValue(valNode)
			if err != nil {
				return value.Value{}, err
			}
			obj.Set(keyNode.Value, v)
		}
		return value.FromObject(obj), nil
	case yamlv3.AliasNode:
		return nodeToValue(n.Alias)
	default:
		return value.Null(), nil
	}
}

func scalarToValue(n *yamlv3.Node) (value.Value, error) {
	var decoded any
	if err := n.Decode(&decoded); err != nil {
		return value.Value{}, fmt.Errorf("yaml scalar: %w", err)
	}
	return fromGo(decoded), nil
}

func fromGo(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(t)
	case int:
		return value.Number(float64(t))
	case int64:
		return value.Number(float64(t))
	case float64:
		return value.Number(t)
	case string:
		return value.String(t)
	default:
		return value.String(fmt.Sprintf("%v", t))
	}
}

// Encode renders v back to YAML text, for round-tripping a validated or
// repaired value into a human-edited config file. Building a Node tree
// (rather than marshaling a plain map) is what keeps object key order —
// yaml.v3 has no MapSlice equivalent to v2's, so order survives only
// through the Node API.
func Encode(v value.Value) (string, error) {
	node := valueToNode(v)
	out, err := yamlv3.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("yaml: %w", err)
	}
	return string(out), nil
}

func valueToNode(v value.Value) *yamlv3.Node {
	switch v.Kind {
	case value.KindNull:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null", Value: "null"}
	case value.KindBool:
		tag, text := "!!bool", "false"
		if v.Bool {
			text = "true"
		}
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tag, Value: text}
	case value.KindNumber:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!float", Value: value.DumpsJSON(v)}
	case value.KindString:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: v.Str}
	case value.KindArray:
		n := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Arr {
			n.Content = append(n.Content, valueToNode(item))
		}
		return n
	case value.KindObject:
		n := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		if v.Obj != nil {
			for _, k := range v.Obj.Keys() {
				fv, _ := v.Obj.Get(k)
				n.Content = append(n.Content, &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: k}, valueToNode(fv))
			}
		}
		return n
	default:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
