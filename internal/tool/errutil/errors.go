package errutil

import "errors"

// Sentinel error classes shared by every tool. Package-level error types
// report their class through an Is method so callers can use errors.Is
// without knowing the concrete type.
var (
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrPathOutsideAllowedRoot = errors.New("path is outside the allowed repository root")
	ErrInvalidPath            = errors.New("invalid path")
	ErrNotAGitRepository      = errors.New("not a git repository")
	ErrUnknownRevision        = errors.New("unknown revision")
	ErrUnknownTool            = errors.New("unknown tool")
	ErrToolFailure            = errors.New("git reported an error")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidArgument, "invalid_argument"},
	{ErrPathOutsideAllowedRoot, "path_outside_allowed_root"},
	{ErrInvalidPath, "invalid_path"},
	{ErrNotAGitRepository, "not_a_git_repository"},
	{ErrUnknownRevision, "unknown_revision"},
	{ErrUnknownTool, "unknown_tool"},
	{ErrToolFailure, "tool_failure"},
}

// Kind names the class of err for logging. Errors outside the taxonomy
// (context cancellation, I/O failures before git ran) report "internal".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
