package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir ensures a directory exists, creating it if necessary
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists reports whether path is already present
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFileAtomic streams r into path through a temporary file in the same
// directory, so a failed download never leaves a partial file at path.
// Returns the number of bytes written.
func WriteFileAtomic(path string, r io.Reader, perm os.FileMode) (int64, error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.part")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return n, fmt.Errorf("failed to write %s: %w", path, err)
	}

	// Sync to disk
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return n, err
	}

	return n, os.Rename(tmpPath, path)
}

// SafeFileName reduces an asset name to a plain file name, rejecting names
// that would escape the target directory
func SafeFileName(name string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." || base == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return base, nil
}
