package diagnostics_test

import (
	"testing"

	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Add_PreservesOrder(t *testing.T) {
	t.Parallel()

	var list diagnostics.List
	assert.Equal(t, 0, list.Len())
	assert.Nil(t, list.All())

	list.Add(&diagnostics.Error{Code: diagnostics.CodeInvalidNode, Message: "first"})
	list.Add(&diagnostics.Error{Message: "second"})

	all := list.All()
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Message)
	assert.Equal(t, "second", all[1].Message)
	assert.Empty(t, all[1].Code)

	all[0] = nil
	assert.NotNil(t, list.All()[0], "All should return a copy")
	assert.Len(t, list.Errors(), 2)
}

func TestError_Error_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *diagnostics.Error
		expected string
	}{
		{name: "without position", err: &diagnostics.Error{Message: "boom"}, expected: "boom"},
		{name: "with position", err: &diagnostics.Error{Message: "boom", Line: 3, Column: 5}, expected: "[3:5] boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestPath_String_Success(t *testing.T) {
	t.Parallel()

	var p diagnostics.Path
	assert.Equal(t, "#/", p.String())

	p.Enter("paths")
	p.Enter("/pets")
	p.Enter("get")
	assert.Equal(t, "#/paths/~1pets/get", p.String())
	assert.Equal(t, 3, p.Depth())
	assert.Equal(t, []string{"paths", "/pets", "get"}, p.Segments())

	p.Exit()
	p.Exit()
	p.Exit()
	assert.Equal(t, 0, p.Depth())
	assert.Equal(t, "#/", p.String())
}

func TestPath_Exit_Unbalanced_Panics(t *testing.T) {
	t.Parallel()

	var p diagnostics.Path
	assert.Panics(t, func() { p.Exit() })
}
