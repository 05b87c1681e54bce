// Package yml contains helpers for working with the gopkg.in/yaml.v3 node tree that backs every
// document read by this module.
package yml

import (
	"gopkg.in/yaml.v3"
)

// ResolveAlias follows alias nodes until a concrete node is reached.
func ResolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// Unwrap resolves aliases and steps into document nodes, returning the node holding the actual content.
func Unwrap(node *yaml.Node) *yaml.Node {
	node = ResolveAlias(node)
	for node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = ResolveAlias(node.Content[0])
	}
	return node
}

// IsMergeKey returns true if the given node is a YAML merge key (<<).
func IsMergeKey(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.Tag == "!!merge" && node.Value == "<<"
}

// ResolveMergeKeys expands any YAML merge keys (<<) found in the content of a mapping node.
// Explicit keys take precedence over merged keys. Merged mappings are flattened recursively and
// circular aliases are ignored. The original content is returned untouched when there is nothing to merge.
func ResolveMergeKeys(content []*yaml.Node) []*yaml.Node {
	return resolveMergeKeys(content, map[*yaml.Node]bool{})
}

func resolveMergeKeys(content []*yaml.Node, seen map[*yaml.Node]bool) []*yaml.Node {
	if len(content)%2 == 1 {
		content = content[:len(content)-1]
	}

	hasMergeKey := false
	explicit := make(map[string]struct{}, len(content)/2)
	for i := 0; i < len(content); i += 2 {
		if IsMergeKey(content[i]) {
			hasMergeKey = true
			continue
		}
		explicit[keyValue(content[i])] = struct{}{}
	}
	if !hasMergeKey {
		return content
	}

	merged := []*yaml.Node{}
	mergedKeys := map[string]struct{}{}

	var collect func(node *yaml.Node)
	collect = func(node *yaml.Node) {
		node = ResolveAlias(node)
		if node == nil {
			return
		}

		switch node.Kind {
		case yaml.MappingNode:
			if seen[node] {
				return
			}
			seen[node] = true

			flat := resolveMergeKeys(node.Content, seen)
			for j := 0; j < len(flat); j += 2 {
				key := keyValue(flat[j])
				if _, ok := explicit[key]; ok {
					continue
				}
				if _, ok := mergedKeys[key]; ok {
					continue
				}
				mergedKeys[key] = struct{}{}
				merged = append(merged, flat[j], flat[j+1])
			}
		case yaml.SequenceNode:
			for _, item := range node.Content {
				collect(item)
			}
		}
	}

	for i := 0; i < len(content); i += 2 {
		if IsMergeKey(content[i]) {
			collect(content[i+1])
		}
	}

	result := make([]*yaml.Node, 0, len(merged)+len(content))
	result = append(result, merged...)
	for i := 0; i < len(content); i += 2 {
		if !IsMergeKey(content[i]) {
			result = append(result, content[i], content[i+1])
		}
	}

	return result
}

func keyValue(node *yaml.Node) string {
	if resolved := ResolveAlias(node); resolved != nil {
		return resolved.Value
	}
	return node.Value
}

// NodeKindToString returns a human-readable name for a yaml.Kind for use in diagnostics.
func NodeKindToString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// NodeTagToString returns a human-readable name for a resolved yaml tag.
func NodeTagToString(tag string) string {
	switch tag {
	case "!!str":
		return "string"
	case "!!int":
		return "int"
	case "!!float":
		return "float"
	case "!!bool":
		return "bool"
	case "!!map":
		return "object"
	case "!!seq":
		return "sequence"
	case "!!null":
		return "null"
	default:
		return tag
	}
}
