package system_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/speakeasy-api/apireader/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_Open_Success(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "pets.yaml")
	testContent := []byte("swagger: \"2.0\"\n")
	require.NoError(t, os.WriteFile(testFile, testContent, 0o644), "should create test file")

	fsys := &system.FileSystem{}
	file, err := fsys.Open(testFile)
	require.NoError(t, err, "should open file successfully")
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err, "should read file content")
	assert.Equal(t, testContent, content, "should read correct content")
}

func TestFileSystem_Open_Error(t *testing.T) {
	t.Parallel()

	fsys := &system.FileSystem{}
	file, err := fsys.Open("nonexistent-file.yaml")

	require.Error(t, err, "should return error for nonexistent file")
	assert.Nil(t, file, "should return nil file on error")
}

func TestFileSystem_Open_RelativeToRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "models", "pet.yaml"), []byte("type: object\n"), 0o644))

	fsys := &system.FileSystem{Root: root}
	file, err := fsys.Open("models/pet.yaml")
	require.NoError(t, err, "should open file relative to root")
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "type: object\n", string(content))

	abs, err := fsys.Open(filepath.Join(root, "models", "pet.yaml"))
	require.NoError(t, err, "should open absolute names as given")
	abs.Close()
}
