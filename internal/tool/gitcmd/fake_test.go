package gitcmd

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/git"
)

// fakeRepository records every call and answers from canned values.
type fakeRepository struct {
	runs     [][]string
	output   map[string]string // keyed by subcommand
	runErr   map[string]error
	refs     map[string]string
	resolved []string

	committed    string
	author       *git.Signature
	resetAll     bool
	resetPaths   []string
	branchName   string
	branchBase   string
	show         *git.ShowResult
	libraryCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		output: map[string]string{},
		runErr: map[string]error{},
		refs:   map[string]string{"HEAD": "abc123", "main": "abc123", "feature": "def456"},
	}
}

func (f *fakeRepository) Root() string { return "/repo" }

func (f *fakeRepository) Run(_ context.Context, args ...string) (string, error) {
	f.runs = append(f.runs, args)
	if err := f.runErr[args[0]]; err != nil {
		return "", err
	}
	return f.output[args[0]], nil
}

func (f *fakeRepository) ResolveRevision(rev string) (string, error) {
	f.resolved = append(f.resolved, rev)
	if hash, ok := f.refs[rev]; ok {
		return hash, nil
	}
	return "", &git.UnknownRevisionError{Revision: rev, Cause: fmt.Errorf("reference not found")}
}

func (f *fakeRepository) Commit(message string, author *git.Signature) (string, error) {
	f.libraryCalls++
	f.committed, f.author = message, author
	return "0123abcd", nil
}

func (f *fakeRepository) ResetAll() error {
	f.libraryCalls++
	f.resetAll = true
	return nil
}

func (f *fakeRepository) ResetIndex(paths []string) error {
	f.libraryCalls++
	f.resetPaths = paths
	return nil
}

func (f *fakeRepository) CreateBranch(name, base string) (string, error) {
	f.libraryCalls++
	f.branchName, f.branchBase = name, base
	if base == "" {
		return "main", nil
	}
	return base, nil
}

func (f *fakeRepository) Show(rev string) (*git.ShowResult, error) {
	f.libraryCalls++
	if _, err := f.ResolveRevision(rev); err != nil {
		return nil, err
	}
	return f.show, nil
}

func (f *fakeRepository) lastRun() []string {
	if len(f.runs) == 0 {
		return nil
	}
	return f.runs[len(f.runs)-1]
}
