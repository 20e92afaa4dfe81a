package util

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
)

var (
	unsafeRunes = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separators  = regexp.MustCompile(`[-\s]+`)
)

// EnsureDir creates the directory path if it does not exist.
func EnsureDir(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}

// SanitizeName cleans a display name for use in a filename:
// - Drop every rune that is not a letter, digit, underscore, whitespace or hyphen
// - Collapse runs of whitespace and hyphens into a single underscore
// Returns "" when nothing usable remains.
func SanitizeName(s string) string {
	s = unsafeRunes.ReplaceAllString(s, "")
	return separators.ReplaceAllString(s, "_")
}

// WriteFileAtomic writes data produced by fill to a temp file in the target
// directory and renames it over path, so readers never see a partial file.
func WriteFileAtomic(path string, fill func(f *os.File) error) (int64, error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return 0, err
	}
	info, err := tmp.Stat()
	if err != nil {
		_ = tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// CheckWritable creates dir if needed and verifies a file can be created in it.
func CheckWritable(dir string) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
