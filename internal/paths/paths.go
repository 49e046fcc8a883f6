// Package paths normalizes filesystem paths for diagram titles and output
// layout. All returned paths use forward slashes regardless of platform.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize converts an absolute path to a root-relative canonical path:
// symlinks resolved, relative to root, forward slashes.
func Canonicalize(absolutePath string, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = root
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// IsWithinRoot checks if a path is inside the given root directory.
func IsWithinRoot(path string, root string) bool {
	canonical, err := Canonicalize(path, root)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(canonical, "..")
}

// Normalize converts backslashes to forward slashes in an already-relative
// path.
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// RelativeTo returns path relative to root with forward slashes, or the
// path unchanged when it cannot be made relative.
func RelativeTo(path string, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Normalize(path)
	}
	return Normalize(rel)
}

// RootBaseName returns the canonicalized base name of a directory, used as
// the title of a combined diagram. Falls back to "diagram" when the name
// cannot be determined.
func RootBaseName(root string) string {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolved = root
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		abs = resolved
	}
	base := filepath.Base(abs)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "diagram"
	}
	return base
}
