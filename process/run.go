package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const defaultGracePeriod = 5 * time.Second

// ErrTimeout is joined into the error of an attempt a Runner timed out.
var ErrTimeout = errors.New("process: timed out")

// ExitError reports a tool that started but exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("process: %s: exit code %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Run starts cmd in its own process group and waits for it. Cancelling ctx
// sends SIGTERM to the group, then SIGKILL once the grace period is over.
// The Result is returned even on failure; ExitCode is -1 when the tool
// never started or was killed.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, errors.New("process: no binary given")
	}

	var stdout, stderr bytes.Buffer
	c := prepare(ctx, cmd)
	c.Stdout, c.Stderr = &stdout, &stderr

	begin := time.Now()
	err := c.Run()
	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(begin),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		return res, fmt.Errorf("process: %s stopped: %w", cmd.Binary, ctx.Err())
	case errors.As(err, &exitErr):
		return res, &ExitError{Command: cmd.Binary, Code: res.ExitCode, Err: err}
	default:
		return res, fmt.Errorf("process: starting %s: %w", cmd.Binary, err)
	}
}

func prepare(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // binaries come from operator config
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = cmd.GracePeriod
	if c.WaitDelay <= 0 {
		c.WaitDelay = defaultGracePeriod
	}
	return c
}
