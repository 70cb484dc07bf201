package path

import (
	"os"
	"path/filepath"
	"strings"
)

// Guard enforces that repository paths stay inside an allowed root.
// A Guard is immutable after construction and safe for concurrent use.
type Guard struct {
	allowedRoot string
}

// NewGuard creates a guard for allowedRoot. An empty root disables the check.
func NewGuard(allowedRoot string) *Guard {
	return &Guard{allowedRoot: allowedRoot}
}

// AllowedRoot returns the root as configured, before canonicalisation.
func (g *Guard) AllowedRoot() string {
	return g.allowedRoot
}

// Validate checks candidate against the allowed root and returns the path
// that should be opened.
//
// Without a root the candidate is only made absolute, so its existence is
// irrelevant. With a root, both paths are canonicalised (symlinks followed)
// on every call; a path that cannot be resolved fails with InvalidPathError
// and one that is neither the root nor below it fails with OutsideRootError.
func (g *Guard) Validate(candidate string) (string, error) {
	if g.allowedRoot == "" {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", &InvalidPathError{Path: candidate, Cause: err}
		}
		return abs, nil
	}

	resolved, err := canonicalise(candidate)
	if err != nil {
		return "", &InvalidPathError{Path: candidate, Cause: err}
	}
	root, err := canonicalise(g.allowedRoot)
	if err != nil {
		return "", &InvalidPathError{Path: g.allowedRoot, Cause: err}
	}

	if !within(root, resolved) {
		return "", &OutsideRootError{Path: candidate, Root: g.allowedRoot}
	}
	return resolved, nil
}

// CanonicaliseRoot canonicalises a root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	resolved, err := canonicalise(root)
	if err != nil {
		return "", &InvalidPathError{Path: root, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &InvalidPathError{Path: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: resolved}
	}
	return resolved, nil
}

func canonicalise(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// within reports whether path is root or a descendant of it, comparing whole
// path segments so that /allowed-other is not inside /allowed.
func within(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
