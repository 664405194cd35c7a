package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"unibuild/pkg/shell"
)

// ExecRunner implements the shell.Runner interface on top of os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner instance.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args and returns the process exit code. When
// opts.IgnoreReturnCode is set a non-zero exit is a normal outcome; the returned
// error is reserved for failure to launch or wait on the process.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts shell.Options) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	if opts.Silent {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	slog.Debug("Executing process", "name", name, "args", args, "silent", opts.Silent)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if opts.IgnoreReturnCode {
				return code, nil
			}
			return code, fmt.Errorf("process %s exited with code %d: %w", name, code, err)
		}
		return -1, fmt.Errorf("failed to launch process %s: %w", name, err)
	}

	return 0, nil
}
