package dispatcher

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
	"github.com/Cyclone1070/mcp-server-git/internal/tool"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/errutil"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/gitcmd"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/executor"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/git"
)

// PathValidator authorises a repository path and returns the path to open.
type PathValidator interface {
	Validate(candidate string) (string, error)
}

// Opener opens the repository rooted at path.
type Opener func(path string) (gitcmd.Repository, error)

// GitOpener returns an Opener backed by the git package.
func GitOpener(runner executor.Runner, cfg *config.Config, logger *zap.Logger) Opener {
	return func(path string) (gitcmd.Repository, error) {
		repo, err := git.Open(path, runner, cfg, logger)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

// Response is the result of one tool call as an ordered list of text parts.
type Response struct {
	Content []string
}

// UnknownToolError is returned for a tool name outside the catalog.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}
func (e *UnknownToolError) Is(target error) bool { return target == errutil.ErrUnknownTool }

// Dispatcher turns a tool name and its raw arguments into a git call.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	guard   PathValidator
	open    Opener
	config  *config.Config
	logger  *zap.Logger
	catalog map[string]tool.Declaration
}

// New creates a dispatcher.
func New(guard PathValidator, open Opener, cfg *config.Config, logger *zap.Logger) *Dispatcher {
	if guard == nil {
		panic("guard is required")
	}
	if open == nil {
		panic("open is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		guard:   guard,
		open:    open,
		config:  cfg,
		logger:  logger,
		catalog: catalog(cfg),
	}
}

// Declarations returns the tool catalog sorted by name.
func (d *Dispatcher) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(d.catalog))
	for _, decl := range d.catalog {
		decls = append(decls, decl)
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Execute runs one tool call. The repository path is authorised before the
// repository is opened, and the arguments are fully validated before git
// is invoked, so a rejected request has no side effects.
func (d *Dispatcher) Execute(ctx context.Context, name string, args map[string]any) (Response, error) {
	start := time.Now()
	repoPath, _ := args["repo_path"].(string)

	text, err := d.execute(ctx, name, repoPath, args)

	fields := []zap.Field{
		zap.String("tool", name),
		zap.String("repo_path", repoPath),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		d.logger.Warn("tool call failed", append(fields, zap.String("error_kind", errutil.Kind(err)), zap.Error(err))...)
		return Response{}, err
	}
	d.logger.Info("tool call", fields...)
	return Response{Content: []string{text}}, nil
}

func (d *Dispatcher) execute(ctx context.Context, name, repoPath string, args map[string]any) (string, error) {
	if repoPath == "" {
		return "", &gitcmd.InvalidArgumentError{Field: "repo_path", Reason: "is required"}
	}

	path, err := d.guard.Validate(repoPath)
	if err != nil {
		return "", err
	}

	repo, err := d.open(path)
	if err != nil {
		return "", err
	}

	op := gitcmd.NewRequest(name, d.config)
	if op == nil {
		return "", &UnknownToolError{Name: name}
	}
	if err := decode(args, op); err != nil {
		return "", err
	}
	if err := op.Validate(d.config); err != nil {
		return "", err
	}

	return route(ctx, repo, op)
}

// decode fills a request, already holding its defaults, from raw arguments.
// Keys the request does not declare, such as repo_path, are ignored.
func decode(args map[string]any, op gitcmd.Operation) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     op,
		DecodeHook: wholeNumbers,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return &gitcmd.InvalidArgumentError{Field: "arguments", Reason: err.Error()}
	}
	return nil
}

// wholeNumbers refuses to truncate a fractional JSON number into an
// integer field.
func wholeNumbers(from, to reflect.Type, data any) (any, error) {
	if to.Kind() < reflect.Int || to.Kind() > reflect.Uint64 {
		return data, nil
	}
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	if f := reflect.ValueOf(data).Float(); f != math.Trunc(f) {
		return nil, fmt.Errorf("expected a whole number, got %v", f)
	}
	return data, nil
}

func route(ctx context.Context, repo gitcmd.Repository, op gitcmd.Operation) (string, error) {
	switch req := op.(type) {
	case *gitcmd.StatusRequest:
		return labelled("Repository status:\n")(gitcmd.Status(ctx, repo, req))
	case *gitcmd.DiffUnstagedRequest:
		return labelled("Unstaged changes:\n")(gitcmd.DiffUnstaged(ctx, repo, req))
	case *gitcmd.DiffStagedRequest:
		return labelled("Staged changes:\n")(gitcmd.DiffStaged(ctx, repo, req))
	case *gitcmd.DiffRequest:
		return labelled("Diff with " + req.Target + ":\n")(gitcmd.Diff(ctx, repo, req))
	case *gitcmd.CommitRequest:
		return gitcmd.Commit(repo, req)
	case *gitcmd.AddRequest:
		return gitcmd.Add(ctx, repo, req)
	case *gitcmd.ResetRequest:
		return gitcmd.Reset(repo, req)
	case *gitcmd.LogRequest:
		entries, err := gitcmd.Log(ctx, repo, req)
		if err != nil {
			return "", err
		}
		return "Commit history:\n" + strings.Join(entries, "\n"), nil
	case *gitcmd.CreateBranchRequest:
		return gitcmd.CreateBranch(ctx, repo, req)
	case *gitcmd.CheckoutRequest:
		return gitcmd.Checkout(ctx, repo, req)
	case *gitcmd.ShowRequest:
		return gitcmd.Show(repo, req)
	case *gitcmd.GrepRequest:
		return gitcmd.Grep(ctx, repo, req)
	case *gitcmd.BranchRequest:
		return gitcmd.ListBranches(ctx, repo, req)
	}
	return "", fmt.Errorf("no route for %T", op)
}

func labelled(label string) func(string, error) (string, error) {
	return func(out string, err error) (string, error) {
		if err != nil {
			return "", err
		}
		return label + out, nil
	}
}
