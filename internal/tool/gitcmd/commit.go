package gitcmd

import (
	"github.com/Cyclone1070/mcp-server-git/internal/config"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/git"
)

// CommitRequest records the index as a new commit.
type CommitRequest struct {
	Message     string `json:"message"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
}

func (r *CommitRequest) Validate(*config.Config) error {
	return required("message", r.Message)
}

// Commit commits the index. The author is overridden only when both name
// and email are present; otherwise git's configured identity is used.
func Commit(repo Repository, req *CommitRequest) (string, error) {
	var author *git.Signature
	if req.AuthorName != "" && req.AuthorEmail != "" {
		author = &git.Signature{Name: req.AuthorName, Email: req.AuthorEmail}
	}
	hash, err := repo.Commit(req.Message, author)
	if err != nil {
		return "", err
	}
	return "Changes committed successfully with hash " + hash, nil
}
