package system

import (
	"io/fs"
	"os"
	"path/filepath"
)

// VirtualFS is the file system external references are read from.
type VirtualFS interface {
	fs.FS
}

// FileSystem is a VirtualFS backed by the operating system. Relative names are opened relative
// to Root, or to the working directory when Root is empty. Unlike os.DirFS, absolute names are
// allowed.
type FileSystem struct {
	Root string
}

var _ VirtualFS = (*FileSystem)(nil)

func (fs *FileSystem) Open(name string) (fs.File, error) {
	if fs.Root != "" && !filepath.IsAbs(name) {
		name = filepath.Join(fs.Root, filepath.FromSlash(name))
	}
	return os.Open(name) //nolint:gosec
}
