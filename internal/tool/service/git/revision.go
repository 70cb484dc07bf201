package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// ResolveRevision resolves a ref name or revision expression to a commit hash.
func (r *Repository) ResolveRevision(rev string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", &UnknownRevisionError{Revision: rev, Cause: err}
	}
	return hash.String(), nil
}

// CreateBranch creates refs/heads/<name> pointing at the commit base refers
// to and returns the short name of the base reference. An empty base means
// the currently checked-out branch. The base must name an existing
// reference; bare commit hashes are not accepted.
func (r *Repository) CreateBranch(name, base string) (string, error) {
	baseRef, err := r.baseReference(base)
	if err != nil {
		return "", err
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(baseRef.Name().String()))
	if err != nil {
		return "", &UnknownRevisionError{Revision: base, Cause: err}
	}

	branch := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(branch, false); err == nil {
		return "", &BranchExistsError{Name: name}
	}

	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(branch, *hash)); err != nil {
		return "", &OperationError{Op: "create branch", Cause: err}
	}
	return baseRef.Name().Short(), nil
}

func (r *Repository) baseReference(base string) (*plumbing.Reference, error) {
	if base == "" {
		head, err := r.repo.Head()
		if err != nil || !head.Name().IsBranch() {
			return nil, &UnknownRevisionError{Revision: "HEAD", Cause: err}
		}
		return head, nil
	}

	candidates := []string{"refs/heads/" + base, "refs/tags/" + base, "refs/remotes/" + base}
	if strings.HasPrefix(base, "refs/") {
		candidates = append([]string{base}, candidates...)
	}
	for _, candidate := range candidates {
		ref, err := r.repo.Reference(plumbing.ReferenceName(candidate), true)
		if err == nil {
			return plumbing.NewHashReference(plumbing.ReferenceName(candidate), ref.Hash()), nil
		}
	}
	return nil, &UnknownRevisionError{Revision: base, Cause: plumbing.ErrReferenceNotFound}
}
