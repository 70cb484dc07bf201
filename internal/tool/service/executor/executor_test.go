package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testLimit = 1024 * 1024

func TestRun(t *testing.T) {
	exec := NewOSCommandExecutor(testLimit, nil)

	t.Run("SimpleCommand", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"echo", "hello"}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "hello", strings.TrimSpace(res.Stdout))
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, err := exec.Run(context.Background(), []string{}, "", nil)
		assert.ErrorIs(t, err, ErrEmptyCommand)
	})

	t.Run("NonZeroExitIsNotAnError", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"sh", "-c", "echo oops >&2; exit 3"}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, "oops", strings.TrimSpace(res.Stderr))
	})

	t.Run("ArgumentsAreNotShellExpanded", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"echo", "$HOME; rm -rf /"}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "$HOME; rm -rf /", strings.TrimSpace(res.Stdout))
	})

	t.Run("WorkingDirectory", func(t *testing.T) {
		dir := t.TempDir()
		res, err := exec.Run(context.Background(), []string{"pwd", "-P"}, dir, nil)
		require.NoError(t, err)
		assert.Contains(t, strings.TrimSpace(res.Stdout), strings.TrimPrefix(dir, "/private"))
	})

	t.Run("Environment", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"sh", "-c", "echo $MCP_GIT_PROBE"}, "", []string{"MCP_GIT_PROBE=ok"})
		require.NoError(t, err)
		assert.Equal(t, "ok", strings.TrimSpace(res.Stdout))
	})

	t.Run("MissingBinary", func(t *testing.T) {
		_, err := exec.Run(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, "", nil)
		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, "start", cmdErr.Stage)
	})

	t.Run("LargeOutput", func(t *testing.T) {
		small := NewOSCommandExecutor(10, nil)
		res, err := small.Run(context.Background(), []string{"echo", "123456789012345"}, "", nil)
		require.NoError(t, err)
		assert.True(t, res.Truncated)
		assert.Equal(t, "1234567890", res.Stdout)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := exec.Run(ctx, []string{"sleep", "5"}, "", nil)
		assert.Error(t, err)
	})
}

func TestRun_LogsQuotedCommand(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	exec := NewOSCommandExecutor(testLimit, zap.New(core))

	_, err := exec.Run(context.Background(), []string{"echo", "two words"}, "", nil)
	require.NoError(t, err)

	entries := logs.FilterMessage("command finished").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "echo 'two words'", entries[0].ContextMap()["cmd"])
	assert.Equal(t, int64(0), entries[0].ContextMap()["exit_code"])
}

func TestCollector(t *testing.T) {
	t.Run("UnderLimit", func(t *testing.T) {
		c := newCollector(10)
		n, err := c.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, "abc", c.String())
		assert.False(t, c.Truncated())
	})

	t.Run("OverLimit", func(t *testing.T) {
		c := newCollector(5)
		n, _ := c.Write([]byte("abcdef"))
		assert.Equal(t, 6, n)
		assert.Equal(t, "abcde", c.String())
		assert.True(t, c.Truncated())
	})

	t.Run("ExactlyAtLimit", func(t *testing.T) {
		c := newCollector(3)
		_, _ = c.Write([]byte("abc"))
		assert.False(t, c.Truncated())
		_, _ = c.Write([]byte("d"))
		assert.True(t, c.Truncated())
	})

	t.Run("BinaryPassesThrough", func(t *testing.T) {
		c := newCollector(10)
		_, _ = c.Write([]byte{'a', 0, 'b'})
		assert.Equal(t, "a\x00b", c.String())
	})
}
