package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/executor"
)

const truncatedNote = "\n[output truncated]"

// Repository is an opened git working tree. It pairs go-git for direct
// index and ref access with the git binary for porcelain commands.
// A Repository lives for a single request and is never shared.
type Repository struct {
	root   string
	repo   *gogit.Repository
	runner executor.Runner
	config *config.Config
	logger *zap.Logger
}

// Open opens the repository whose working tree is rooted at root.
// Parent directories are not searched.
func Open(root string, runner executor.Runner, cfg *config.Config, logger *zap.Logger) (*Repository, error) {
	if cfg == nil {
		panic("cfg is required")
	}
	if runner == nil {
		panic("runner is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	repo, err := plainOpen(root)
	if err != nil {
		return nil, err
	}
	return &Repository{
		root:   root,
		repo:   repo,
		runner: runner,
		config: cfg,
		logger: logger,
	}, nil
}

// IsRepository reports whether path is the root of a git repository.
func IsRepository(path string) bool {
	_, err := plainOpen(path)
	return err == nil
}

func plainOpen(root string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		return nil, &NotARepositoryError{Path: root, Cause: err}
	}
	return repo, nil
}

// Root returns the working tree path the repository was opened at.
func (r *Repository) Root() string {
	return r.root
}

// Run invokes the git binary in the working tree with args as discrete
// argv entries. Trailing newlines are trimmed from stdout, and a note is
// appended when output was cut at the configured size limit.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	command := append([]string{r.config.Git.Binary}, args...)

	res, err := r.runner.Run(ctx, command, r.root, r.env())
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		r.logger.Debug("git exited non-zero",
			zap.Strings("args", args),
			zap.Int("exit_code", res.ExitCode),
		)
		return "", &CommandFailedError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	out := strings.TrimRight(res.Stdout, "\n")
	if res.Truncated {
		out += truncatedNote
	}
	return out, nil
}

func (r *Repository) env() []string {
	env := append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return append(env, r.config.Git.Env...)
}

// relative converts a caller-supplied path to a slash-separated path
// relative to the working tree root.
func (r *Repository) relative(p string) string {
	if filepath.IsAbs(p) {
		if rel, err := filepath.Rel(r.root, p); err == nil {
			p = rel
		}
	}
	p = filepath.ToSlash(filepath.Clean(p))
	if p == "." {
		return ""
	}
	return strings.TrimSuffix(p, "/")
}
