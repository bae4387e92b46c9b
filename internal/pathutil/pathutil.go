// Package pathutil provides path manipulation utilities.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandTilde expands a leading ~ to the home directory.
// Returns the path unchanged if it is not ~ or ~/...
func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand home dir: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}

// ResolvePath resolves a path with tilde expansion and relative path resolution.
// - ~ and ~/... paths are expanded to home directory
// - Absolute paths are returned as-is
// - Relative paths are resolved from baseDir
// - Empty paths are not allowed and return an error
func ResolvePath(path, baseDir string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		return expandTilde(path)
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	return filepath.Join(baseDir, path), nil
}
