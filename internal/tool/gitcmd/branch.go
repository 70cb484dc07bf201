package gitcmd

import (
	"context"
	"errors"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/git"
)

// Branch scopes accepted by BranchRequest.
const (
	BranchLocal  = "local"
	BranchRemote = "remote"
	BranchAll    = "all"
)

// BranchRequest lists branches, optionally filtered by commit containment.
type BranchRequest struct {
	BranchType  string `json:"branch_type"`
	Contains    string `json:"contains"`
	NotContains string `json:"not_contains"`
}

func (r *BranchRequest) Validate(*config.Config) error {
	return firstError(
		rejectFlag("contains", r.Contains),
		rejectFlag("not_contains", r.NotContains),
	)
}

// ListBranches runs git branch. An unrecognised scope is answered with a
// message rather than an error.
func ListBranches(ctx context.Context, repo Repository, req *BranchRequest) (string, error) {
	args := []string{"branch"}
	switch req.BranchType {
	case BranchLocal:
	case BranchRemote:
		args = append(args, "-r")
	case BranchAll:
		args = append(args, "-a")
	default:
		return "Invalid branch type: " + req.BranchType, nil
	}
	if req.Contains != "" {
		args = append(args, "--contains="+req.Contains)
	}
	if req.NotContains != "" {
		args = append(args, "--no-contains="+req.NotContains)
	}
	return repo.Run(ctx, args...)
}

// CreateBranchRequest creates BranchName from BaseBranch, or from the
// current branch when BaseBranch is empty.
type CreateBranchRequest struct {
	BranchName string `json:"branch_name"`
	BaseBranch string `json:"base_branch"`
}

func (r *CreateBranchRequest) Validate(*config.Config) error {
	return firstError(
		required("branch_name", r.BranchName),
		rejectFlag("branch_name", r.BranchName),
		rejectFlag("base_branch", r.BaseBranch),
	)
}

// CreateBranch checks the name with git check-ref-format before creating
// the ref through the library.
func CreateBranch(ctx context.Context, repo Repository, req *CreateBranchRequest) (string, error) {
	if _, err := repo.Run(ctx, "check-ref-format", "--branch", req.BranchName); err != nil {
		var failed *git.CommandFailedError
		if errors.As(err, &failed) {
			return "", &InvalidArgumentError{Field: "branch_name", Reason: "'" + req.BranchName + "' is not a valid branch name"}
		}
		return "", err
	}

	base, err := repo.CreateBranch(req.BranchName, req.BaseBranch)
	if err != nil {
		return "", err
	}
	return "Created branch '" + req.BranchName + "' from '" + base + "'", nil
}
