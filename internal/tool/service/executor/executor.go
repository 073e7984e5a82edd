package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/Cyclone1070/llmx/internal/config"
)

const sampleSize = 8000

// Result represents the outcome of a command execution. A non-zero exit is
// reported through ExitCode, not as an error.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor runs real processes with os/exec. Every process gets
// its own process group so a timeout also stops the children a shell
// spawned.
type OSCommandExecutor struct {
	maxOutput int
	grace     time.Duration
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{
		maxOutput: int(cfg.Tools.MaxCommandOutputSize),
		grace:     time.Duration(cfg.Tools.GracefulShutdownMs) * time.Millisecond,
	}
}

// Run executes a command until it exits or ctx is done.
func (e *OSCommandExecutor) Run(ctx context.Context, command []string, dir string, env []string) (*Result, error) {
	return e.RunWithTimeout(ctx, command, dir, env, 0)
}

// Shell runs script through sh -c, the way a terminal user would type it.
func (e *OSCommandExecutor) Shell(ctx context.Context, script string, timeout time.Duration) (*Result, error) {
	return e.RunWithTimeout(ctx, []string{"sh", "-c", script}, "", nil, timeout)
}

// RunWithTimeout executes a command with a timeout and graceful shutdown:
// on timeout the process group is interrupted, then killed after the grace
// period. A zero timeout disables the limit.
func (e *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.WaitDelay = e.grace

	stdout := newCollector(e.maxOutput, sampleSize)
	stderr := newCollector(e.maxOutput, sampleSize)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		signalGroup(cmd, syscall.SIGKILL)
		<-done
		execErr = ctx.Err()
	case <-expired:
		signalGroup(cmd, syscall.SIGINT)
		select {
		case <-done:
		case <-time.After(e.grace):
			signalGroup(cmd, syscall.SIGKILL)
			<-done
		}
		execErr = ErrTimeout
	}

	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}

	var exitErr *exec.ExitError
	switch {
	case execErr == nil, errors.Is(execErr, exec.ErrWaitDelay):
		// ErrWaitDelay: the command exited cleanly but a background child
		// kept the output open.
		return res, nil
	case errors.As(execErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		res.ExitCode = -1
		return res, execErr
	}
}

func signalGroup(cmd *exec.Cmd, sig syscall.Signal) {
	if cmd.Process == nil {
		return
	}
	if err := syscall.Kill(-cmd.Process.Pid, sig); err != nil {
		_ = cmd.Process.Signal(sig)
	}
}
