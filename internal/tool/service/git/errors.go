package git

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/mcp-server-git/internal/tool/errutil"
)

// NotARepositoryError is returned when a path is not the root of a git repository.
type NotARepositoryError struct {
	Path  string
	Cause error
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("%s is not a valid Git repository", e.Path)
}
func (e *NotARepositoryError) Unwrap() error        { return e.Cause }
func (e *NotARepositoryError) Is(target error) bool { return target == errutil.ErrNotAGitRepository }

// UnknownRevisionError is returned when a ref or revision expression does not resolve.
type UnknownRevisionError struct {
	Revision string
	Cause    error
}

func (e *UnknownRevisionError) Error() string {
	return fmt.Sprintf("unknown revision: '%s'", e.Revision)
}
func (e *UnknownRevisionError) Unwrap() error        { return e.Cause }
func (e *UnknownRevisionError) Is(target error) bool { return target == errutil.ErrUnknownRevision }

// CommandFailedError is returned when git exits non-zero. Its message is
// git's own stderr, unmodified apart from surrounding whitespace.
type CommandFailedError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandFailedError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	sub := ""
	if len(e.Args) > 0 {
		sub = " " + e.Args[0]
	}
	return fmt.Sprintf("git%s exited with status %d", sub, e.ExitCode)
}
func (e *CommandFailedError) Is(target error) bool { return target == errutil.ErrToolFailure }

// OperationError is returned when a library-backed operation fails after
// its inputs were accepted.
type OperationError struct {
	Op    string
	Cause error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}
func (e *OperationError) Unwrap() error        { return e.Cause }
func (e *OperationError) Is(target error) bool { return target == errutil.ErrToolFailure }

// BranchExistsError is returned when creating a branch whose name is taken.
type BranchExistsError struct {
	Name string
}

func (e *BranchExistsError) Error() string {
	return fmt.Sprintf("a branch named '%s' already exists", e.Name)
}
func (e *BranchExistsError) Is(target error) bool { return target == errutil.ErrToolFailure }
