// Package saver writes binary service responses into the output directory.
package saver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxCollisions bounds the " (n)" suffix search.
const maxCollisions = 1000

// Saver stores blobs under a fixed directory.
type Saver struct {
	dir string
}

// New creates a saver for dir. The directory is created on first save.
func New(dir string) *Saver {
	return &Saver{dir: dir}
}

// Dir returns the output directory.
func (s *Saver) Dir() string {
	return s.dir
}

// Save streams body into dir/filename and closes body. The data goes to a
// temp file first so a failed transfer never leaves a partial file under
// the final name. Returns the final path.
func (s *Saver) Save(filename string, body io.ReadCloser) (string, error) {
	defer body.Close()

	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) || filename == "" {
		return "", fmt.Errorf("save: invalid filename %q", filename)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".bakra-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	dest, err := s.freePath(filename)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("rename to %s: %w", dest, err)
	}
	committed = true

	return dest, nil
}

// freePath returns dir/filename, or "name (n).ext" if taken.
func (s *Saver) freePath(filename string) (string, error) {
	candidate := filepath.Join(s.dir, filename)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for n := 1; n <= maxCollisions; n++ {
		candidate = filepath.Join(s.dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free name for %s in %s", filename, s.dir)
}
