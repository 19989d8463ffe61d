package extract

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// maxOutput bounds the tool output kept for diagnostics.
const maxOutput = 4096

// Runner executes a tool command.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// RunError reports a failed tool invocation with its captured output.
type RunError struct {
	Command Command
	Output  string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s: %v", e.Command.Path, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands as local processes.
type ExecRunner struct {
	// Timeout bounds each run. Zero means no limit.
	Timeout time.Duration
}

// Run starts the command and waits for it, returning combined output.
func (r ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	out, err := c.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return out, &RunError{Command: cmd, Output: truncate(out), Err: err}
	}
	return out, nil
}

func truncate(out []byte) string {
	if len(out) <= maxOutput {
		return string(out)
	}
	return string(out[len(out)-maxOutput:])
}
