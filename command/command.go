package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// defaultGrace bounds how long a timed-out child may linger after SIGTERM.
const defaultGrace = 5 * time.Second

// Runner executes the wrapped command. It is configured once at startup and
// reused for every tool call.
type Runner struct {
	Command   string
	ExtraArgs []string
	Dir       string
	Timeout   time.Duration
	Grace     time.Duration
	logger    zerolog.Logger
}

// Option is a function that configures the runner.
type Option func(r *Runner)

// WithExtraArgs appends fixed arguments to every invocation.
func WithExtraArgs(args []string) Option {
	return func(r *Runner) {
		r.ExtraArgs = args
	}
}

// WithDir sets the working directory of the command.
func WithDir(dir string) Option {
	return func(r *Runner) {
		r.Dir = dir
	}
}

// WithTimeout bounds command execution; zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.Timeout = timeout
	}
}

// WithGrace sets how long a timed-out command has to exit after SIGTERM
// before it is killed.
func WithGrace(grace time.Duration) Option {
	return func(r *Runner) {
		r.Grace = grace
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a runner for the supplied command.
func New(command string, options ...Option) *Runner {
	ret := &Runner{Command: command, Grace: defaultGrace, logger: zerolog.Nop()}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Result holds the outcome of a single command execution.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Duration time.Duration
}

// Run executes the command with the supplied arguments followed by any extra
// arguments. The command runs directly, never through a shell, and inherits
// the parent environment unmodified. A non-nil error is returned only when
// the process could not be started; exit codes and timeouts are reported in
// the result. A timed-out command always yields ExitCode -1 with TimedOut
// set, never a normal exit code.
func (r *Runner) Run(ctx context.Context, args []string) (*Result, error) {
	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	argv := make([]string, 0, len(args)+len(r.ExtraArgs))
	argv = append(argv, args...)
	argv = append(argv, r.ExtraArgs...)

	cmd := exec.CommandContext(runCtx, r.Command, argv...)
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = r.Grace

	r.logger.Debug().Str("command", r.Command).Strs("args", argv).Msg("starting command")
	started := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(started),
	}
	if err != nil {
		var exitError *exec.ExitError
		switch {
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			result.TimedOut = true
			result.ExitCode = -1
		case cmd.Process == nil:
			return nil, fmt.Errorf("failed to start %v: %w", r.Command, err)
		case errors.As(err, &exitError):
			result.ExitCode = exitError.ExitCode()
		case errors.Is(err, exec.ErrWaitDelay):
			result.ExitCode = cmd.ProcessState.ExitCode()
		default:
			return nil, fmt.Errorf("failed to run %v: %w", r.Command, err)
		}
	} else if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
	}
	r.logger.Debug().Str("command", r.Command).
		Int("exitCode", result.ExitCode).
		Bool("timedOut", result.TimedOut).
		Dur("duration", result.Duration).
		Msg("command finished")
	return result, nil
}
