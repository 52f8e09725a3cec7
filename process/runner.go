package process

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Config configures a Runner.
type Config struct {
	// Timeout bounds every attempt. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
	// GracePeriod is the default grace period for SIGTERM then SIGKILL.
	GracePeriod time.Duration `yaml:"grace_period,omitempty" mapstructure:"grace_period"`
	// Retries is how many extra attempts a command that exits non-zero gets.
	// Timeouts and start failures are not retried.
	Retries int `yaml:"retries,omitempty" mapstructure:"retries"`
	// RetryBackoff is the initial delay between attempts.
	RetryBackoff time.Duration `yaml:"retry_backoff,omitempty" mapstructure:"retry_backoff"`
}

// Runner executes commands with a per-attempt timeout and optional retries.
// It is safe for concurrent use.
type Runner struct {
	config Config
}

// NewRunner creates a Runner.
func NewRunner(cfg Config) *Runner {
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 200 * time.Millisecond
	}
	return &Runner{config: cfg}
}

// Run executes cmd. A killed-by-timeout attempt returns an error wrapping
// ErrTimeout. Cancelling ctx stops both the command and any pending retry.
func (r *Runner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.GracePeriod == 0 && r.config.GracePeriod > 0 {
		cmd.GracePeriod = r.config.GracePeriod
	}
	if r.config.Retries <= 0 {
		return r.attempt(ctx, cmd)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.RetryBackoff

	var last *Result
	res, err := backoff.Retry(ctx, func() (*Result, error) {
		res, err := r.attempt(ctx, cmd)
		last = res
		if err == nil {
			return res, nil
		}
		// Only a tool that ran and failed may succeed on a second try.
		var exitErr *ExitError
		if errors.Is(err, ErrTimeout) || ctx.Err() != nil || !errors.As(err, &exitErr) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(r.config.Retries+1)))
	if err != nil {
		return last, err
	}
	return res, nil
}

func (r *Runner) attempt(ctx context.Context, cmd Command) (*Result, error) {
	if r.config.Timeout <= 0 {
		return Run(ctx, cmd)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	res, err := Run(attemptCtx, cmd)
	if err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return res, errors.Join(ErrTimeout, err)
	}
	return res, err
}
