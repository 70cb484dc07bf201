package git

import (
	"errors"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Signature identifies a commit author.
type Signature struct {
	Name  string
	Email string
}

var errNoIdentity = errors.New("author identity unknown: set user.name and user.email in git config")

// Commit records the current index as a new commit on HEAD and returns its
// hash. A nil author falls back to the identity in git config, which is also
// always used as committer when present.
func (r *Repository) Commit(message string, author *Signature) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", &OperationError{Op: "commit", Cause: err}
	}

	now := time.Now()
	configured := r.configuredIdentity()
	if author == nil {
		author = configured
	}
	if author == nil {
		return "", &OperationError{Op: "commit", Cause: errNoIdentity}
	}
	committer := configured
	if committer == nil {
		committer = author
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:            &object.Signature{Name: author.Name, Email: author.Email, When: now},
		Committer:         &object.Signature{Name: committer.Name, Email: committer.Email, When: now},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", &OperationError{Op: "commit", Cause: err}
	}
	return hash.String(), nil
}

// configuredIdentity reads user.name and user.email, with repository config
// taking precedence over global and system config.
func (r *Repository) configuredIdentity() *Signature {
	cfg, err := r.repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		return nil
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil
	}
	return &Signature{Name: cfg.User.Name, Email: cfg.User.Email}
}
