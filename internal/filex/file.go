// Package filex contains small filesystem helpers: the client data directory
// and reading report photos from disk.
package filex

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MaxImageBytes is the largest photo the backend accepts on a report.
const MaxImageBytes = 5 * 1024 * 1024

var ErrImageTooLarge = errors.New("image exceeds 5MB limit")

// EnsureDir creates dir (and parents) if needed and returns its absolute
// path. Relative paths are resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// ReadImageBase64 loads an image file and returns it base64-encoded for the
// JSON report payload. Files over MaxImageBytes are rejected before upload,
// mirroring the server-side limit.
func ReadImageBase64(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Size() > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
