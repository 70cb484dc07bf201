// Package gitcmd turns typed git tool requests into git invocations.
//
// Every request type validates its own fields before anything touches the
// repository. Values git would read positionally as a ref or branch are
// rejected when they start with '-', path lists always follow "--", and
// grep patterns always follow "-e".
package gitcmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/errutil"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/git"
)

// Tool names as advertised to clients.
const (
	ToolStatus       = "git_status"
	ToolDiffUnstaged = "git_diff_unstaged"
	ToolDiffStaged   = "git_diff_staged"
	ToolDiff         = "git_diff"
	ToolCommit       = "git_commit"
	ToolAdd          = "git_add"
	ToolReset        = "git_reset"
	ToolLog          = "git_log"
	ToolCreateBranch = "git_create_branch"
	ToolCheckout     = "git_checkout"
	ToolShow         = "git_show"
	ToolGrep         = "git_grep"
	ToolBranch       = "git_branch"
)

// Repository is what the builders need from an opened repository: the git
// binary for porcelain commands and direct library access for the rest.
type Repository interface {
	Root() string
	Run(ctx context.Context, args ...string) (string, error)
	ResolveRevision(rev string) (string, error)
	Commit(message string, author *git.Signature) (string, error)
	ResetAll() error
	ResetIndex(paths []string) error
	CreateBranch(name, base string) (string, error)
	Show(rev string) (*git.ShowResult, error)
}

// Operation is a decoded request for one tool.
type Operation interface {
	// Validate checks ranges and rejects flag-like values. It never
	// touches the repository.
	Validate(cfg *config.Config) error
}

// NewRequest returns an empty request for the named tool, pre-filled with
// its defaults, ready to be decoded into. Unknown names return nil.
func NewRequest(name string, cfg *config.Config) Operation {
	switch name {
	case ToolStatus:
		return &StatusRequest{}
	case ToolDiffUnstaged:
		return &DiffUnstagedRequest{ContextLines: cfg.Tools.DefaultContextLines}
	case ToolDiffStaged:
		return &DiffStagedRequest{ContextLines: cfg.Tools.DefaultContextLines}
	case ToolDiff:
		return &DiffRequest{ContextLines: cfg.Tools.DefaultContextLines}
	case ToolCommit:
		return &CommitRequest{}
	case ToolAdd:
		return &AddRequest{}
	case ToolReset:
		return &ResetRequest{}
	case ToolLog:
		return &LogRequest{MaxCount: cfg.Tools.DefaultLogCount}
	case ToolCreateBranch:
		return &CreateBranchRequest{}
	case ToolCheckout:
		return &CheckoutRequest{}
	case ToolShow:
		return &ShowRequest{}
	case ToolGrep:
		return &GrepRequest{LineNumbers: true}
	case ToolBranch:
		return &BranchRequest{BranchType: BranchLocal}
	}
	return nil
}

// InvalidArgumentError reports a request field that failed validation.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
func (e *InvalidArgumentError) Is(target error) bool { return target == errutil.ErrInvalidArgument }

func rejectFlag(field, value string) error {
	if strings.HasPrefix(value, "-") {
		return &InvalidArgumentError{Field: field, Reason: fmt.Sprintf("'%s' - cannot start with '-'", value)}
	}
	return nil
}

func required(field, value string) error {
	if value == "" {
		return &InvalidArgumentError{Field: field, Reason: "is required"}
	}
	return nil
}

func inRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return &InvalidArgumentError{Field: field, Reason: fmt.Sprintf("%d is not between %d and %d", value, lo, hi)}
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// withPaths appends "--" and paths when any are given.
func withPaths(args []string, paths []string) []string {
	if len(paths) == 0 {
		return args
	}
	return append(append(args, "--"), paths...)
}

// afterRevisions closes the revision list with "--" even without paths, so
// a revision that also names a file is never read as a path.
func afterRevisions(args []string, paths []string) []string {
	return append(append(args, "--"), paths...)
}
