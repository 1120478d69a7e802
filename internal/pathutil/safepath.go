// Package pathutil keeps user-configured file locations inside the data
// directory.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveSafePath resolves userPath relative to baseDir and verifies that the
// result, after symlink resolution, is still inside baseDir.
//
// Relative paths are joined with baseDir; absolute paths are accepted only
// when they fall inside baseDir. Neither baseDir nor the target has to
// exist yet: missing trailing components are resolved against their
// closest existing ancestor.
//
// Returns an error if userPath is blank, contains a null byte, or escapes
// baseDir (including via symlinks).
//
// Example:
//
//	path, err := ResolveSafePath("/home/user/.tasklist", "storage.json")
//	// path == "/home/user/.tasklist/storage.json"
func ResolveSafePath(baseDir, userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", fmt.Errorf("path is empty or whitespace-only")
	}
	if strings.Contains(userPath, "\x00") {
		return "", fmt.Errorf("path contains null byte")
	}

	candidate := userPath
	if !filepath.IsAbs(userPath) {
		candidate = filepath.Join(baseDir, userPath)
	}

	resolved, err := resolve(filepath.Clean(candidate))
	if err != nil {
		return "", err
	}

	baseResolved, err := resolve(filepath.Clean(baseDir))
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(baseResolved, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes base directory: %s", userPath)
	}

	return resolved, nil
}

// resolve evaluates symlinks in path. When path does not exist, the closest
// existing ancestor is resolved and the missing components are re-appended.
func resolve(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to resolve symlinks: %w", err)
	}

	current := path
	var missing []string
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent directory found for %s", path)
		}
		missing = append(missing, filepath.Base(current))
		current = parent

		if _, err := os.Stat(current); err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(current)
		if err != nil {
			return "", fmt.Errorf("failed to resolve existing parent: %w", err)
		}
		for i := len(missing) - 1; i >= 0; i-- {
			resolved = filepath.Join(resolved, missing[i])
		}
		return resolved, nil
	}
}
