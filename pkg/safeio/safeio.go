// Package safeio guards the filesystem edges of the indexer: script reads
// stay contained under the scan root, and artifact writes preserve the
// permissions of the file they replace.
package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// CleanUserPath cleans a user-provided path and rejects traversal attempts.
// Returns paths with forward slashes for cross-platform consistency.
func CleanUserPath(p string) (string, error) {
	c := filepath.Clean(p)
	if strings.Contains(c, "..") {
		return "", errors.New("path traversal detected")
	}
	return filepath.ToSlash(c), nil
}

// ReadFileContained reads a file only if it resolves to a location inside
// baseDir. The walk hands this function every candidate script path, so a
// symlink pointing outside the scan root cannot pull foreign content into
// the manifest.
func ReadFileContained(baseDir, filePath string) ([]byte, error) {
	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.New("failed to resolve base directory")
	}
	fileAbs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, errors.New("failed to resolve file path")
	}

	rel, err := filepath.Rel(baseAbs, fileAbs)
	if err != nil {
		return nil, errors.New("failed to compute relative path")
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, errors.New("file path is outside base directory")
	}

	// #nosec G304 -- containment verified above
	return os.ReadFile(fileAbs)
}

// WriteFilePreservePerms writes data to path, keeping the existing file
// mode when the file already exists and defaulting to 0644 otherwise.
// Parent directories are created as needed.
func WriteFilePreservePerms(path string, data []byte) error {
	var mode os.FileMode = 0o644
	if st, err := os.Stat(path); err == nil {
		if m := st.Mode() & 0o777; m != 0 {
			mode = m
		}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, mode)
}
