package logos

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem serves logos from a local directory of <Name>.png files.
type Filesystem struct {
	root string
}

// NewFilesystem returns a Store over the given directory.
func NewFilesystem(root string) *Filesystem {
	return &Filesystem{root: root}
}

// Get opens the logo file for a kring name.
func (f *Filesystem) Get(_ context.Context, name string) (io.ReadCloser, string, error) {
	// Keys never contain separators; reject anything that tries.
	k := key(name)
	if strings.ContainsAny(k, `/\`) || strings.Contains(k, "..") {
		return nil, "", ErrNotFound
	}

	file, err := os.Open(filepath.Join(f.root, k))
	if os.IsNotExist(err) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return file, "image/png", nil
}
