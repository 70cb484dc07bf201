package gitcmd

import (
	"context"
	"strconv"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
)

// DiffUnstagedRequest compares the working tree with the index.
type DiffUnstagedRequest struct {
	ContextLines     int      `json:"context_lines"`
	IgnoreWhitespace bool     `json:"ignore_whitespace"`
	Paths            []string `json:"paths"`
}

func (r *DiffUnstagedRequest) Validate(cfg *config.Config) error {
	return inRange("context_lines", r.ContextLines, 0, cfg.Tools.MaxContextLines)
}

// DiffStagedRequest compares the index with HEAD.
type DiffStagedRequest struct {
	ContextLines     int      `json:"context_lines"`
	IgnoreWhitespace bool     `json:"ignore_whitespace"`
	Paths            []string `json:"paths"`
}

func (r *DiffStagedRequest) Validate(cfg *config.Config) error {
	return inRange("context_lines", r.ContextLines, 0, cfg.Tools.MaxContextLines)
}

// DiffRequest compares Target with the working tree, or with Base when set.
// With MergeBase, Target is compared with the merge base of Base and Target.
type DiffRequest struct {
	Target           string   `json:"target"`
	Base             string   `json:"base"`
	MergeBase        bool     `json:"merge_base"`
	ContextLines     int      `json:"context_lines"`
	IgnoreWhitespace bool     `json:"ignore_whitespace"`
	Paths            []string `json:"paths"`
}

func (r *DiffRequest) Validate(cfg *config.Config) error {
	return firstError(
		required("target", r.Target),
		rejectFlag("target", r.Target),
		rejectFlag("base", r.Base),
		inRange("context_lines", r.ContextLines, 0, cfg.Tools.MaxContextLines),
	)
}

func diffArgs(contextLines int, ignoreWhitespace bool) []string {
	args := []string{"diff", "--unified=" + strconv.Itoa(contextLines)}
	if ignoreWhitespace {
		args = append(args, "-w")
	}
	return args
}

// DiffUnstaged runs git diff against the index.
func DiffUnstaged(ctx context.Context, repo Repository, req *DiffUnstagedRequest) (string, error) {
	args := diffArgs(req.ContextLines, req.IgnoreWhitespace)
	return repo.Run(ctx, withPaths(args, req.Paths)...)
}

// DiffStaged runs git diff --cached.
func DiffStaged(ctx context.Context, repo Repository, req *DiffStagedRequest) (string, error) {
	args := []string{"diff", "--unified=" + strconv.Itoa(req.ContextLines), "--cached"}
	if req.IgnoreWhitespace {
		args = append(args, "-w")
	}
	return repo.Run(ctx, withPaths(args, req.Paths)...)
}

// Diff resolves both refs before running git diff so that a typo fails as
// an unknown revision instead of being read as a path.
func Diff(ctx context.Context, repo Repository, req *DiffRequest) (string, error) {
	if _, err := repo.ResolveRevision(req.Target); err != nil {
		return "", err
	}
	if req.Base != "" {
		if _, err := repo.ResolveRevision(req.Base); err != nil {
			return "", err
		}
	}

	args := diffArgs(req.ContextLines, req.IgnoreWhitespace)
	switch {
	case req.Base != "" && req.MergeBase:
		args = append(args, req.Base+"..."+req.Target)
	case req.Base != "":
		args = append(args, req.Base, req.Target)
	default:
		args = append(args, req.Target)
	}
	return repo.Run(ctx, afterRevisions(args, req.Paths)...)
}
