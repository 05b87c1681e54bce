package yml

import (
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToValue converts a node into plain Go values: map[string]any, []any, string, bool, int64, float64 or nil.
// Scalars whose tag cannot be honoured (e.g. an !!int that overflows) fall back to their raw string.
// Aliases are followed and merge keys expanded; cyclic aliases terminate as nil.
func ToValue(node *yaml.Node) any {
	return toValue(node, map[*yaml.Node]bool{})
}

func toValue(node *yaml.Node, visiting map[*yaml.Node]bool) any {
	node = Unwrap(node)
	if node == nil {
		return nil
	}

	if visiting[node] {
		return nil
	}

	switch node.Kind {
	case yaml.MappingNode:
		visiting[node] = true
		defer delete(visiting, node)

		content := ResolveMergeKeys(node.Content)
		out := make(map[string]any, len(content)/2)
		for i := 0; i+1 < len(content); i += 2 {
			out[keyValue(content[i])] = toValue(content[i+1], visiting)
		}
		return out
	case yaml.SequenceNode:
		visiting[node] = true
		defer delete(visiting, node)

		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			out = append(out, toValue(item, visiting))
		}
		return out
	case yaml.ScalarNode:
		return scalarValue(node)
	default:
		return nil
	}
}

func scalarValue(node *yaml.Node) any {
	switch node.Tag {
	case "!!null":
		return nil
	case "!!bool":
		if b, err := strconv.ParseBool(node.Value); err == nil {
			return b
		}
		var b bool
		if err := node.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
			return i
		}
	case "!!float":
		var f float64
		if err := node.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f
		}
	}
	return node.Value
}
