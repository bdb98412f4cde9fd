package fsutil

import (
	"fmt"
	"path/filepath"
)

// Canonical returns the absolute form of path with symlinks resolved. A path
// that does not exist yet is resolved through its deepest existing parent,
// so /tmp/link/new with link -> /data yields /data/new.
func Canonical(path string) (string, error) {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		return resolved, nil
	}

	checkPath := absPath
	for {
		parentDir := filepath.Dir(checkPath)
		if parentDir == checkPath {
			return absPath, nil
		}
		if resolved, err := filepath.EvalSymlinks(parentDir); err == nil {
			relToParent, err := filepath.Rel(parentDir, absPath)
			if err != nil {
				return "", err
			}
			return filepath.Join(resolved, relToParent), nil
		}
		checkPath = parentDir
	}
}

// SameDir reports whether a and b resolve to the same location.
func SameDir(a, b string) (bool, error) {
	ca, err := Canonical(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonical(b)
	if err != nil {
		return false, err
	}
	return ca == cb, nil
}
