package git

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ShowResult describes a commit and the patch it introduced.
type ShowResult struct {
	Hash    string
	Author  string
	Date    string
	Message string
	Patch   string
}

// Show resolves rev to a commit and diffs it against its first parent.
// A root commit is diffed against the empty tree so its whole content
// appears as additions.
func (r *Repository) Show(rev string) (*ShowResult, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, &UnknownRevisionError{Revision: rev, Cause: err}
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, &UnknownRevisionError{Revision: rev, Cause: err}
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, &OperationError{Op: "show", Cause: err}
	}

	parentTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, &OperationError{Op: "show", Cause: err}
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, &OperationError{Op: "show", Cause: err}
		}
	}

	patch, err := parentTree.Patch(tree)
	if err != nil {
		return nil, &OperationError{Op: "show", Cause: err}
	}

	return &ShowResult{
		Hash:    commit.Hash.String(),
		Author:  commit.Author.Name + " <" + commit.Author.Email + ">",
		Date:    commit.Author.When.Format(time.RFC3339),
		Message: commit.Message,
		Patch:   patch.String(),
	}, nil
}
