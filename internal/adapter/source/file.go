// Package source provides pipeline sources that fetch the summary CSV from
// the local filesystem or over HTTP.
package source

import (
	"context"
	"fmt"
	"os"
)

// File reads the payload from a local path.
type File struct {
	path string
}

// NewFile creates a File source for path.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return f.path }

// Fetch reads the whole file. The context is only checked before reading.
func (f *File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return data, nil
}
