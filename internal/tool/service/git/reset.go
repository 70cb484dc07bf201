package git

import (
	"errors"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ResetAll resets the whole index to HEAD, leaving the working tree alone.
func (r *Repository) ResetAll() error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return &OperationError{Op: "reset", Cause: err}
	}
	if err := wt.Reset(&gogit.ResetOptions{Mode: gogit.MixedReset}); err != nil {
		return &OperationError{Op: "reset", Cause: err}
	}
	return nil
}

// ResetIndex resets the index entries under each path to their HEAD state.
// Entries that do not exist in HEAD are removed from the index. A path may
// name a file or a directory; "." selects everything.
func (r *Repository) ResetIndex(paths []string) error {
	headFiles, err := r.headFiles()
	if err != nil {
		return &OperationError{Op: "reset", Cause: err}
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return &OperationError{Op: "reset", Cause: err}
	}

	for _, p := range paths {
		prefix := r.relative(p)

		for name, file := range headFiles {
			if !underPath(name, prefix) {
				continue
			}
			entry, err := idx.Entry(name)
			if err != nil {
				entry = idx.Add(name)
			}
			entry.Hash = file.Hash
			entry.Mode = file.Mode
			entry.Size = 0
			entry.CreatedAt = time.Time{}
			entry.ModifiedAt = time.Time{}
			entry.Dev, entry.Inode, entry.UID, entry.GID = 0, 0, 0, 0
		}

		var stale []string
		for _, entry := range idx.Entries {
			if _, inHead := headFiles[entry.Name]; !inHead && underPath(entry.Name, prefix) {
				stale = append(stale, entry.Name)
			}
		}
		for _, name := range stale {
			if _, err := idx.Remove(name); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
				return &OperationError{Op: "reset", Cause: err}
			}
		}
	}

	idx.Cache = nil
	if err := r.repo.Storer.SetIndex(idx); err != nil {
		return &OperationError{Op: "reset", Cause: err}
	}
	return nil
}

// headFiles lists every blob in the HEAD tree. An unborn HEAD has none.
func (r *Repository) headFiles() (map[string]*object.File, error) {
	files := make(map[string]*object.File)

	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return files, nil
	}
	if err != nil {
		return nil, err
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}
	err = tree.Files().ForEach(func(f *object.File) error {
		files[f.Name] = f
		return nil
	})
	return files, err
}

func underPath(name, prefix string) bool {
	return prefix == "" || name == prefix || strings.HasPrefix(name, prefix+"/")
}
