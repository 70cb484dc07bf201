package gitcmd

import (
	"context"
	"errors"
	"strings"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/git"
)

// GrepRequest searches tracked files, or a revision's tree when Revision is set.
type GrepRequest struct {
	Pattern     string   `json:"pattern"`
	Revision    string   `json:"revision"`
	Paths       []string `json:"paths"`
	IgnoreCase  bool     `json:"ignore_case"`
	LineNumbers bool     `json:"line_numbers"`
}

func (r *GrepRequest) Validate(*config.Config) error {
	return firstError(
		required("pattern", r.Pattern),
		rejectFlag("revision", r.Revision),
	)
}

// Grep runs git grep with the pattern behind -e. git exits 1 with no
// output when nothing matches, which is reported as a normal result.
func Grep(ctx context.Context, repo Repository, req *GrepRequest) (string, error) {
	if req.Revision != "" {
		if _, err := repo.ResolveRevision(req.Revision); err != nil {
			return "", err
		}
	}

	args := []string{"grep"}
	if req.IgnoreCase {
		args = append(args, "-i")
	}
	if req.LineNumbers {
		args = append(args, "-n")
	}
	args = append(args, "-e", req.Pattern)
	if req.Revision != "" {
		args = append(args, req.Revision)
	}
	args = append(append(args, "--"), req.Paths...)

	out, err := repo.Run(ctx, args...)
	var failed *git.CommandFailedError
	if errors.As(err, &failed) && failed.ExitCode == 1 && strings.TrimSpace(failed.Stderr) == "" {
		return "No matches found", nil
	}
	return out, err
}
