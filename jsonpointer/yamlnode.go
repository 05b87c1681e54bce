package jsonpointer

import (
	"strconv"

	"github.com/speakeasy-api/apireader/yml"
	"gopkg.in/yaml.v3"
)

// GetNode evaluates the pointer against a yaml node tree and returns the addressed node.
// Document and alias nodes are stepped through and merge keys are honoured when looking up mapping keys.
func GetNode(root *yaml.Node, pointer JSONPointer) (*yaml.Node, error) {
	parts, err := pointer.Parts()
	if err != nil {
		return nil, err
	}

	current := yml.Unwrap(root)
	if current == nil {
		return nil, notFound("yaml node is empty")
	}

	path := ""
	for _, part := range parts {
		path += "/" + EscapeString(part)

		switch current.Kind {
		case yaml.MappingNode:
			current, err = getMappingValue(current, part, path)
		case yaml.SequenceNode:
			current, err = getSequenceItem(current, part, path)
		default:
			return nil, ErrInvalidPath.Wrapf("cannot navigate through %s yaml node at %s", yml.NodeKindToString(current.Kind), path)
		}
		if err != nil {
			return nil, err
		}

		current = yml.Unwrap(current)
		if current == nil {
			return nil, notFound("yaml node is empty at %s", path)
		}
	}

	return current, nil
}

func getMappingValue(node *yaml.Node, key, path string) (*yaml.Node, error) {
	content := yml.ResolveMergeKeys(node.Content)
	for i := 0; i+1 < len(content); i += 2 {
		keyNode := yml.ResolveAlias(content[i])
		if keyNode != nil && keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return content[i+1], nil
		}
	}
	return nil, notFound("key %s not found in yaml mapping at %s", key, path)
}

func getSequenceItem(node *yaml.Node, part, path string) (*yaml.Node, error) {
	index, err := strconv.Atoi(part)
	if err != nil || (len(part) > 1 && part[0] == '0') {
		return nil, ErrInvalidPath.Wrapf("expected index, got %s at %s", part, path)
	}

	if index < 0 || index >= len(node.Content) {
		return nil, notFound("index %d out of range for yaml sequence of length %d at %s", index, len(node.Content), path)
	}

	return node.Content[index], nil
}
