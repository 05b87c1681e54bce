// Package json renders yaml node trees as JSON, keeping the key order of the source document.
package json

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/speakeasy-api/apireader/yml"
	"gopkg.in/yaml.v3"
)

// YAMLToJSON will convert the provided YAML node to JSON in a stable way not reordering keys.
// An indentation of zero writes compact JSON. The output is terminated by a newline.
func YAMLToJSON(node *yaml.Node, indentation int, buffer io.Writer) error {
	data, err := Marshal(node)
	if err != nil {
		return err
	}

	if indentation > 0 {
		var indented bytes.Buffer
		if err := json.Indent(&indented, data, "", strings.Repeat(" ", indentation)); err != nil {
			return err
		}
		data = indented.Bytes()
	}

	if _, err := buffer.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// Marshal returns the compact JSON rendering of node. A nil node renders as null.
func Marshal(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, node, map[*yaml.Node]bool{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, node *yaml.Node, visiting map[*yaml.Node]bool) error {
	node = yml.Unwrap(node)
	if node == nil || node.Kind == 0 {
		buf.WriteString("null")
		return nil
	}

	if visiting[node] {
		return fmt.Errorf("cyclic alias at line %d", node.Line)
	}

	switch node.Kind {
	case yaml.MappingNode:
		visiting[node] = true
		defer delete(visiting, node)

		buf.WriteByte('{')
		content := yml.ResolveMergeKeys(node.Content)
		for i := 0; i+1 < len(content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(keyString(content[i]))
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encode(buf, content[i+1], visiting); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		visiting[node] = true
		defer delete(visiting, node)

		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, item, visiting); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		data, err := json.Marshal(yml.ToValue(node))
		if err != nil {
			return err
		}
		buf.Write(data)
	default:
		return fmt.Errorf("unknown node kind: %s", yml.NodeKindToString(node.Kind))
	}

	return nil
}

// keyString renders a mapping key. Non-scalar keys are rendered as their JSON text.
func keyString(key *yaml.Node) string {
	key = yml.ResolveAlias(key)
	if key == nil {
		return ""
	}
	if key.Kind == yaml.ScalarNode {
		return key.Value
	}
	data, err := json.Marshal(yml.ToValue(key))
	if err != nil {
		return ""
	}
	return string(data)
}
