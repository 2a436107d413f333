package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// CommandResult holds the captured output of one process.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr, which is where some CLIs print
// the values callers need to parse.
func (r CommandResult) Combined() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// CommandOptions holds optional parameters for one invocation.
type CommandOptions struct {
	Dir   string
	Stdin string
}

// CommandRunner runs external commands.
// A non-zero exit is reported through CommandResult.ExitCode, not as an error;
// the error is reserved for processes that could not run at all.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, opts CommandOptions) (CommandResult, error)
}

// ExecCommandRunner is the os/exec implementation of CommandRunner.
type ExecCommandRunner struct{}

func NewExecCommandRunner() *ExecCommandRunner {
	return &ExecCommandRunner{}
}

func (it *ExecCommandRunner) Run(
	ctx context.Context,
	name string,
	args []string,
	opts CommandOptions,
) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}

	logger.Debugf("Running: %s %s", name, strings.Join(args, " "))
	err := cmd.Run()

	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, err
	}
	return result, nil
}
