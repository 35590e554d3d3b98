package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// File reads the status document from disk, typically a saved copy of
// fdbcli --exec "status json" output
type File struct {
	Path string
}

// NewFile creates a file fetcher
func NewFile(path string) *File {
	return &File{Path: path}
}

// Fetch reads the whole file
func (f *File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrStatusNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrStatusNotFound, f.Path)
	}
	return data, nil
}
