package gitcmd

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
)

// ShowRequest describes a single commit.
type ShowRequest struct {
	Revision string `json:"revision"`
}

func (r *ShowRequest) Validate(*config.Config) error {
	return firstError(
		required("revision", r.Revision),
		rejectFlag("revision", r.Revision),
	)
}

// Show renders the commit header followed by its patch.
func Show(repo Repository, req *ShowRequest) (string, error) {
	res, err := repo.Show(req.Revision)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Commit: %s\nAuthor: %s\nDate: %s\nMessage: %s\n\n%s",
		res.Hash, res.Author, res.Date, strings.TrimRight(res.Message, "\n"), res.Patch), nil
}
