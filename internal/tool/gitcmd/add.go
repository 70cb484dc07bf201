package gitcmd

import (
	"context"
	"slices"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
)

// AddRequest stages files. The single entry "." stages the whole tree.
type AddRequest struct {
	Files []string `json:"files"`
}

func (r *AddRequest) Validate(*config.Config) error {
	if len(r.Files) == 0 {
		return &InvalidArgumentError{Field: "files", Reason: "at least one file is required"}
	}
	return nil
}

// Add runs git add.
func Add(ctx context.Context, repo Repository, req *AddRequest) (string, error) {
	args := []string{"add", "."}
	if !slices.Equal(req.Files, []string{"."}) {
		args = append([]string{"add", "--"}, req.Files...)
	}
	if _, err := repo.Run(ctx, args...); err != nil {
		return "", err
	}
	return "Files staged successfully", nil
}
