package gitcmd

import (
	"context"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
)

// StatusRequest asks for working tree status, optionally limited to paths.
type StatusRequest struct {
	Paths []string `json:"paths"`
}

func (r *StatusRequest) Validate(*config.Config) error { return nil }

// Status runs git status.
func Status(ctx context.Context, repo Repository, req *StatusRequest) (string, error) {
	return repo.Run(ctx, withPaths([]string{"status"}, req.Paths)...)
}
