// Package main runs the git MCP server over stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Cyclone1070/mcp-server-git/internal/config"
	"github.com/Cyclone1070/mcp-server-git/internal/logging"
	"github.com/Cyclone1070/mcp-server-git/internal/server"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/repos"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/executor"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/git"
	"github.com/Cyclone1070/mcp-server-git/internal/tool/service/path"
	"github.com/Cyclone1070/mcp-server-git/internal/workflow/dispatcher"
)

const (
	envPrefix = "MCP_GIT"

	flagRepository = "repository"
	flagConfig     = "config"
	flagLogFile    = "log-file"
	flagLogLevel   = "log-level"
	flagVerbose    = "verbose"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server-git",
		Short: "MCP server exposing git operations over stdio",
		Long: "mcp-server-git serves git status, diff, commit, log, branch, grep and show as MCP tools.\n" +
			"When a repository is given, every tool call must target that repository or a path inside it.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Version:      version,
	}
	v := bindFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), v)
	}
	return cmd
}

// bindFlags declares the command line flags and binds them, together with
// their MCP_GIT_* environment variables, to a fresh viper instance.
func bindFlags(cmd *cobra.Command) *viper.Viper {
	flags := cmd.Flags()
	flags.StringP(flagRepository, "r", "", "Git repository path; tool calls outside it are refused")
	flags.String(flagConfig, "", "JSON config file (default ~/.config/mcp-server-git/config.json)")
	flags.String(flagLogFile, "", "Write logs to this file, rotated, instead of stderr")
	flags.String(flagLogLevel, "", "Log level: debug, info, warn or error")
	flags.CountP(flagVerbose, "v", "Log at debug level")

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
	return v
}

// loadConfig reads the config file and applies flag and environment overrides.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if file := v.GetString(flagConfig); file != "" {
		cfg, err = config.NewLoader().LoadFile(file)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if repo := v.GetString(flagRepository); repo != "" {
		cfg.Repository = repo
	}
	if file := v.GetString(flagLogFile); file != "" {
		cfg.Log.File = file
	}
	if level := v.GetString(flagLogLevel); level != "" {
		cfg.Log.Level = level
	}
	if v.GetInt(flagVerbose) > 0 {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := buildServer(cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

// buildServer checks the configured repository and wires the server.
func buildServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	if cfg.Repository != "" {
		root, err := path.CanonicaliseRoot(cfg.Repository)
		if err != nil {
			return nil, fmt.Errorf("repository %s: %w", cfg.Repository, err)
		}
		if !git.IsRepository(root) {
			return nil, &git.NotARepositoryError{Path: cfg.Repository}
		}
		logger.Info("using repository", zap.String("path", root))
	}

	runner := executor.NewOSCommandExecutor(cfg.Tools.MaxCommandOutputSize, logger.Named("exec"))
	d := dispatcher.New(
		path.NewGuard(cfg.Repository),
		dispatcher.GitOpener(runner, cfg, logger),
		cfg,
		logger.Named("dispatch"),
	)
	resolver := repos.NewResolver(cfg.Repository, git.IsRepository)

	return server.New(d, resolver, version, logger)
}
