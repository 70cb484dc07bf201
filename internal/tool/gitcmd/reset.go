package gitcmd

import (
	"fmt"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
)

// ResetRequest unstages Paths, or everything when Paths is empty.
type ResetRequest struct {
	Paths []string `json:"paths"`
}

func (r *ResetRequest) Validate(*config.Config) error { return nil }

// Reset resets index entries to HEAD without touching the working tree.
func Reset(repo Repository, req *ResetRequest) (string, error) {
	if len(req.Paths) > 0 {
		if err := repo.ResetIndex(req.Paths); err != nil {
			return "", err
		}
		return fmt.Sprintf("Reset %d files", len(req.Paths)), nil
	}
	if err := repo.ResetAll(); err != nil {
		return "", err
	}
	return "All staged changes reset", nil
}
