package gitcmd

import (
	"context"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
)

// CheckoutRequest switches the working tree to BranchName.
type CheckoutRequest struct {
	BranchName string `json:"branch_name"`
}

func (r *CheckoutRequest) Validate(*config.Config) error {
	return firstError(
		required("branch_name", r.BranchName),
		rejectFlag("branch_name", r.BranchName),
	)
}

// Checkout resolves the name first, then runs git checkout with a trailing
// "--" so the name can only be taken as a revision.
func Checkout(ctx context.Context, repo Repository, req *CheckoutRequest) (string, error) {
	if _, err := repo.ResolveRevision(req.BranchName); err != nil {
		return "", err
	}
	if _, err := repo.Run(ctx, "checkout", req.BranchName, "--"); err != nil {
		return "", err
	}
	return "Switched to branch '" + req.BranchName + "'", nil
}
