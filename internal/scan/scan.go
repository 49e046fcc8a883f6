// Package scan discovers Python source files under a project root, applying
// exclusion patterns to directory and file names.
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"classmap/internal/paths"
)

// DefaultExcludes are directory and file patterns skipped unless --exclude
// replaces them.
var DefaultExcludes = []string{
	".bzr",
	".direnv",
	".eggs",
	".git",
	".git-rewrite",
	".hg",
	".ipynb_checkpoints",
	".mypy_cache",
	".nox",
	".pants.d",
	".pyenv",
	".pytest_cache",
	".pytype",
	".ruff_cache",
	".svn",
	".tox",
	".venv",
	".vscode",
	"__pypackages__",
	"_build",
	"buck-out",
	"dist",
	"node_modules",
	"site-packages",
	"venv",
}

// Settings controls a walk. Exclude replaces the default pattern list when
// set; ExtendExclude always adds to whichever list is active.
type Settings struct {
	Root          string
	Exclude       []string
	ExtendExclude []string
}

// NewSettings builds walk settings over the default exclude list.
func NewSettings(root string) Settings {
	return Settings{Root: root, Exclude: DefaultExcludes}
}

func (s Settings) excluded(relPath, name string) bool {
	for _, patterns := range [][]string{s.Exclude, s.ExtendExclude} {
		for _, pattern := range patterns {
			if matchPattern(pattern, relPath, name) {
				return true
			}
		}
	}
	return false
}

// matchPattern matches a glob pattern against either the path component
// name or the root-relative path.
func matchPattern(pattern, relPath, name string) bool {
	if ok, _ := filepath.Match(pattern, name); ok {
		return true
	}
	if ok, _ := filepath.Match(pattern, relPath); ok {
		return true
	}
	// Directory patterns also exclude everything under the directory.
	if strings.HasPrefix(relPath, pattern+"/") {
		return true
	}
	return false
}

// PythonFiles walks the root and returns all non-excluded Python source
// files in sorted order.
func PythonFiles(settings Settings) ([]string, error) {
	var files []string

	err := filepath.WalkDir(settings.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(settings.Root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if settings.excluded(rel, d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsPythonFile(path) {
			// A symlink may point outside the root; those files are not
			// part of the project being diagrammed.
			if !paths.IsWithinRoot(path, settings.Root) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// IsPythonFile reports whether a path names a Python source file.
func IsPythonFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyi":
		return true
	}
	return false
}
