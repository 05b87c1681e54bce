package utils_test

import (
	"testing"

	"github.com/speakeasy-api/apireader/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyReference_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ref      string
		expected utils.ReferenceType
	}{
		{name: "http url", ref: "https://example.com/pets.yaml", expected: utils.ReferenceTypeURL},
		{name: "file url", ref: "file:///tmp/pets.yaml", expected: utils.ReferenceTypeURL},
		{name: "fragment", ref: "#/definitions/Pet", expected: utils.ReferenceTypeFragment},
		{name: "relative file", ref: "./common.yaml", expected: utils.ReferenceTypeFilePath},
		{name: "bare file", ref: "common.yaml", expected: utils.ReferenceTypeFilePath},
		{name: "absolute file", ref: "/specs/common.yaml", expected: utils.ReferenceTypeFilePath},
		{name: "windows drive", ref: `C:\specs\common.yaml`, expected: utils.ReferenceTypeFilePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc, err := utils.ClassifyReference(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rc.Type)
			assert.Equal(t, tt.ref, rc.Original)
		})
	}
}

func TestClassifyReference_Error(t *testing.T) {
	t.Parallel()

	_, err := utils.ClassifyReference("")
	require.Error(t, err)

	_, err = utils.ClassifyReference("http://[::1]:namedport")
	require.Error(t, err)
}

func TestJoinReference_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		relative string
		expected string
	}{
		{name: "empty base", base: "", relative: "common.yaml", expected: "common.yaml"},
		{name: "empty relative", base: "specs/api.yaml", relative: "", expected: "specs/api.yaml"},
		{name: "sibling file", base: "specs/api.yaml", relative: "common.yaml", expected: "specs/common.yaml"},
		{name: "parent file", base: "specs/v1/api.yaml", relative: "../common.yaml", expected: "specs/common.yaml"},
		{name: "absolute file", base: "specs/api.yaml", relative: "/shared/common.yaml", expected: "/shared/common.yaml"},
		{name: "url sibling", base: "https://example.com/specs/api.yaml", relative: "common.yaml", expected: "https://example.com/specs/common.yaml"},
		{name: "url absolute", base: "specs/api.yaml", relative: "https://example.com/common.yaml", expected: "https://example.com/common.yaml"},
		{name: "fragment replaces fragment", base: "specs/api.yaml#/a", relative: "#/b", expected: "specs/api.yaml#/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := utils.JoinReference(tt.base, tt.relative)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSplitReference_Success(t *testing.T) {
	t.Parallel()

	resource, fragment := utils.SplitReference("common.yaml#/definitions/Pet")
	assert.Equal(t, "common.yaml", resource)
	assert.Equal(t, "/definitions/Pet", fragment)

	resource, fragment = utils.SplitReference("common.yaml")
	assert.Equal(t, "common.yaml", resource)
	assert.Empty(t, fragment)
}
