package executor

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
	"time"

	"al.essio.dev/pkg/shellescape"
	"go.uber.org/zap"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// Runner runs a command to completion and returns its captured output.
type Runner interface {
	Run(ctx context.Context, command []string, dir string, env []string) (*Result, error)
}

// OSCommandExecutor implements Runner using os/exec for real system commands.
type OSCommandExecutor struct {
	maxOutputBytes int
	logger         *zap.Logger
}

// NewOSCommandExecutor creates an executor that keeps at most maxOutputBytes
// of each stream. A nil logger disables debug logging.
func NewOSCommandExecutor(maxOutputBytes int64, logger *zap.Logger) *OSCommandExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OSCommandExecutor{maxOutputBytes: int(maxOutputBytes), logger: logger}
}

// Run executes a command without a shell and buffers its output.
//
// A process that exits non-zero is reported through Result.ExitCode with a
// nil error; the error return is reserved for failing to run it at all,
// including context cancellation.
func (f *OSCommandExecutor) Run(ctx context.Context, command []string, dir string, env []string) (*Result, error) {
	if len(command) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	stdoutStr, stderrStr, truncated := f.collectOutput(stdoutPipe, stderrPipe)

	err = cmd.Wait()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			return nil, &CommandError{Cmd: command[0], Cause: errors.Join(ctx.Err(), err), Stage: "execution"}
		}
		exitCode = exitErr.ExitCode()
	}

	f.logger.Debug("command finished",
		zap.String("cmd", shellescape.QuoteCommand(command)),
		zap.String("dir", dir),
		zap.Int("exit_code", exitCode),
		zap.Bool("truncated", truncated),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{
		Stdout:    stdoutStr,
		Stderr:    stderrStr,
		ExitCode:  exitCode,
		Truncated: truncated,
	}, nil
}

func (f *OSCommandExecutor) collectOutput(stdout, stderr io.Reader) (string, string, bool) {
	stdoutCollector := newCollector(f.maxOutputBytes)
	stderrCollector := newCollector(f.maxOutputBytes)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, _ = io.Copy(stdoutCollector, stdout)
	}()

	go func() {
		defer wg.Done()
		_, _ = io.Copy(stderrCollector, stderr)
	}()

	wg.Wait()

	truncated := stdoutCollector.Truncated() || stderrCollector.Truncated()
	return stdoutCollector.String(), stderrCollector.String(), truncated
}
