package yml_test

import (
	"testing"

	"github.com/speakeasy-api/apireader/yml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, src string) *yaml.Node {
	t.Helper()

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return &node
}

func TestUnwrap_Success(t *testing.T) {
	t.Parallel()

	root := yml.Unwrap(parse(t, "a: 1"))
	require.NotNil(t, root)
	assert.Equal(t, yaml.MappingNode, root.Kind)

	assert.Nil(t, yml.Unwrap(nil))
	assert.Nil(t, yml.Unwrap(&yaml.Node{Kind: yaml.DocumentNode}))
}

func TestResolveMergeKeys_ExplicitKeysWin(t *testing.T) {
	t.Parallel()

	root := yml.Unwrap(parse(t, `
base: &base
  type: string
  format: uuid
id:
  <<: *base
  format: int64
`))

	_, idNode := root.Content[2], root.Content[3]
	content := yml.ResolveMergeKeys(idNode.Content)

	got := map[string]string{}
	for i := 0; i < len(content); i += 2 {
		got[content[i].Value] = content[i+1].Value
	}

	assert.Equal(t, map[string]string{"type": "string", "format": "int64"}, got)
}

func TestToValue_Success(t *testing.T) {
	t.Parallel()

	v := yml.ToValue(parse(t, `
name: pet
count: 3
ratio: 0.5
enabled: true
nothing: null
tags: [a, b]
`))

	assert.Equal(t, map[string]any{
		"name":    "pet",
		"count":   int64(3),
		"ratio":   0.5,
		"enabled": true,
		"nothing": nil,
		"tags":    []any{"a", "b"},
	}, v)
}

func TestToValue_CyclicAliasTerminates(t *testing.T) {
	t.Parallel()

	node := &yaml.Node{Kind: yaml.SequenceNode}
	node.Content = []*yaml.Node{{Kind: yaml.AliasNode, Alias: node}}

	assert.Equal(t, []any{nil}, yml.ToValue(node))
}

func TestNodeKindToString_Success(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "object", yml.NodeKindToString(yaml.MappingNode))
	assert.Equal(t, "sequence", yml.NodeKindToString(yaml.SequenceNode))
	assert.Equal(t, "scalar", yml.NodeKindToString(yaml.ScalarNode))
	assert.Equal(t, "string", yml.NodeTagToString("!!str"))
}

func TestQuery_Success(t *testing.T) {
	t.Parallel()

	root := yml.Unwrap(parse(t, `
info:
  title: Pets
`))

	nodes, err := yml.Query(root, "$.info.title")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Pets", nodes[0].Value)
}
