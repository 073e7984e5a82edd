package executor

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	cfg := config.DefaultConfig()
	exec := NewOSCommandExecutor(cfg)

	t.Run("SimpleCommand", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"echo", "hello"}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "hello", strings.TrimSpace(res.Stdout))
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, err := exec.Run(context.Background(), []string{}, "", nil)
		assert.ErrorIs(t, err, os.ErrInvalid)
	})

	t.Run("NonZeroExitIsNotAnError", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"sh", "-c", "exit 3"}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
	})

	t.Run("Stderr", func(t *testing.T) {
		res, err := exec.Run(context.Background(), []string{"sh", "-c", "echo error >&2"}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "error", strings.TrimSpace(res.Stderr))
	})

	t.Run("MissingBinary", func(t *testing.T) {
		_, err := exec.Run(context.Background(), []string{"definitely-not-a-real-binary-llmx"}, "", nil)
		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, "start", cmdErr.Stage)
	})

	t.Run("LargeOutput", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tools.MaxCommandOutputSize = 10
		exec := NewOSCommandExecutor(cfg)

		res, err := exec.Run(context.Background(), []string{"echo", "123456789012345"}, "", nil)
		require.NoError(t, err)
		assert.True(t, res.Truncated)
		assert.LessOrEqual(t, len(res.Stdout), 10)
	})
}

func TestShell(t *testing.T) {
	exec := NewOSCommandExecutor(config.DefaultConfig())

	res, err := exec.Shell(context.Background(), "echo a | tr a b", time.Second)

	require.NoError(t, err)
	assert.Equal(t, "b", strings.TrimSpace(res.Stdout))
}

func TestRunWithTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.GracefulShutdownMs = 100
	exec := NewOSCommandExecutor(cfg)

	t.Run("CompletesBeforeTimeout", func(t *testing.T) {
		res, err := exec.RunWithTimeout(context.Background(), []string{"echo", "hi"}, "", nil, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "hi", strings.TrimSpace(res.Stdout))
	})

	t.Run("TimeoutKillsProcess", func(t *testing.T) {
		start := time.Now()
		res, err := exec.RunWithTimeout(context.Background(), []string{"sleep", "10"}, "", nil, 100*time.Millisecond)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Equal(t, -1, res.ExitCode)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("OutputCollectedOnTimeout", func(t *testing.T) {
		cmd := []string{"sh", "-c", "echo starting; sleep 10"}
		res, err := exec.RunWithTimeout(context.Background(), cmd, "", nil, 500*time.Millisecond)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Equal(t, "starting", strings.TrimSpace(res.Stdout))
	})

	t.Run("ContextCancel", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_, err := exec.RunWithTimeout(ctx, []string{"sleep", "10"}, "", nil, time.Minute)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestCollector(t *testing.T) {
	t.Run("UnderLimit", func(t *testing.T) {
		c := newCollector(10, 5)
		n, err := c.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, "abc", c.String())
		assert.False(t, c.Truncated())
	})

	t.Run("OverLimit", func(t *testing.T) {
		c := newCollector(5, 5)
		_, _ = c.Write([]byte("abcdef"))
		assert.Equal(t, "abcde", c.String())
		assert.True(t, c.Truncated())
	})

	t.Run("BinaryDetection", func(t *testing.T) {
		c := newCollector(10, 5)
		_, _ = c.Write([]byte{'a', 0, 'b'})
		assert.Equal(t, binaryPlaceholder, c.String())
		assert.True(t, c.Truncated())
	})
}

func TestFormatTimeout(t *testing.T) {
	assert.Equal(t, "2 minutos", FormatTimeout(120))
	assert.Equal(t, "5 minutos", FormatTimeout(300))
	assert.Equal(t, "1 minuto", FormatTimeout(60))
	assert.Equal(t, "45 segundos", FormatTimeout(45))
}
