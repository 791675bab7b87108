// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Errors returned when a ROM file can not be used.
var (
	ErrNotFound   = errors.New("file not found")
	ErrNotRegular = errors.New("not a regular file")
	ErrTooLarge   = errors.New("file too large")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load validates the file at path and returns its content. The file has to
// exist, be a regular file and be at most maxSize bytes long.
func (l *Loader) Load(path string, maxSize int) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if info.Size() > int64(maxSize) {
		return nil, fmt.Errorf("%w: %s has %d bytes, %d allowed", ErrTooLarge, path, info.Size(), maxSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file, maxSize)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads the complete ROM from the reader. Reading stops with
// ErrTooLarge as soon as more than maxSize bytes are available.
func (l *Loader) LoadFromReader(reader io.Reader, maxSize int) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, int64(maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	if len(data) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxSize)
	}
	return data, nil
}
