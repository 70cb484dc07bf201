package path

import (
	"fmt"

	"github.com/Cyclone1070/mcp-server-git/internal/tool/errutil"
)

// OutsideRootError is returned when a repository path escapes the allowed root.
type OutsideRootError struct {
	Path string
	Root string
}

func (e *OutsideRootError) Error() string {
	return fmt.Sprintf("repository path '%s' is outside the allowed repository '%s'", e.Path, e.Root)
}
func (e *OutsideRootError) Is(target error) bool { return target == errutil.ErrPathOutsideAllowedRoot }

// InvalidPathError is returned when a path cannot be canonicalised.
type InvalidPathError struct {
	Path  string
	Cause error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path: %s: %v", e.Path, e.Cause)
}
func (e *InvalidPathError) Unwrap() error        { return e.Cause }
func (e *InvalidPathError) Is(target error) bool { return target == errutil.ErrInvalidPath }

// NotADirectoryError is returned by CanonicaliseRoot for a non-directory root.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("not a directory: %s", e.Path)
}
func (e *NotADirectoryError) Is(target error) bool { return target == errutil.ErrInvalidPath }
