package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCreateYamlNodes_DecodeLikeParsedNodes(t *testing.T) {
	t.Parallel()

	doc := CreateDocumentYamlNode(CreateMapYamlNode([]*yaml.Node{
		CreateStringYamlNode("name", 1, 1), CreateStringYamlNode("pets", 1, 7),
		CreateStringYamlNode("limit", 2, 1), CreateIntYamlNode(10, 2, 8),
		CreateStringYamlNode("deprecated", 3, 1), CreateBoolYamlNode(true, 3, 13),
		CreateStringYamlNode("tags", 4, 1), CreateSequenceYamlNode([]*yaml.Node{
			CreateStringYamlNode("a", 5, 5),
		}, 5, 3),
	}, 1, 1))

	var out struct {
		Name       string   `yaml:"name"`
		Limit      int      `yaml:"limit"`
		Deprecated bool     `yaml:"deprecated"`
		Tags       []string `yaml:"tags"`
	}
	require.NoError(t, doc.Decode(&out))

	assert.Equal(t, "pets", out.Name)
	assert.Equal(t, 10, out.Limit)
	assert.True(t, out.Deprecated)
	assert.Equal(t, []string{"a"}, out.Tags)
	assert.Equal(t, 1, doc.Line)
}
