// Package testutils builds yaml nodes for tests that need exact positions or shapes a parser
// would not produce.
package testutils

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func CreateStringYamlNode(value string, line, column int) *yaml.Node {
	return &yaml.Node{
		Value:  value,
		Kind:   yaml.ScalarNode,
		Tag:    "!!str",
		Line:   line,
		Column: column,
	}
}

func CreateIntYamlNode(value int, line, column int) *yaml.Node {
	return &yaml.Node{
		Value:  fmt.Sprintf("%d", value),
		Kind:   yaml.ScalarNode,
		Tag:    "!!int",
		Line:   line,
		Column: column,
	}
}

func CreateBoolYamlNode(value bool, line, column int) *yaml.Node {
	return &yaml.Node{
		Value:  fmt.Sprintf("%t", value),
		Kind:   yaml.ScalarNode,
		Tag:    "!!bool",
		Line:   line,
		Column: column,
	}
}

// CreateMapYamlNode creates a mapping from alternating key and value nodes.
func CreateMapYamlNode(contents []*yaml.Node, line, column int) *yaml.Node {
	return &yaml.Node{
		Content: contents,
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Line:    line,
		Column:  column,
	}
}

func CreateSequenceYamlNode(contents []*yaml.Node, line, column int) *yaml.Node {
	return &yaml.Node{
		Content: contents,
		Kind:    yaml.SequenceNode,
		Tag:     "!!seq",
		Line:    line,
		Column:  column,
	}
}

// CreateDocumentYamlNode wraps content in a document node the way a decoder does.
func CreateDocumentYamlNode(content *yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{content},
		Line:    content.Line,
		Column:  content.Column,
	}
}
