package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/farm-stack/create-farm-app/internal/logging"
)

// Command is one external command invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the outcome of running a Command.
type Result struct {
	Failed   bool
	ExitCode int
	// Err is set when the command could not be started or was killed.
	Err    error
	Stdout string
	Stderr string
}

// Reason describes why a failed Result failed.
func (r Result) Reason() string {
	switch {
	case !r.Failed:
		return ""
	case r.Err != nil:
		return r.Err.Error()
	default:
		return fmt.Sprintf("exit status %d", r.ExitCode)
	}
}

// Runner runs commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) Result
}

// ExecRunner runs commands as subprocesses and waits for them to exit.
type ExecRunner struct {
	// Stdout and Stderr receive a live copy of the command's output when set.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd in cmd.Dir. Output is captured into the Result and logged
// at debug level.
func (e *ExecRunner) Run(ctx context.Context, cmd Command) Result {
	logging.Debug("Running command", "command", cmd.String(), "dir", cmd.Dir)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdoutBuf, stderrBuf bytes.Buffer
	c.Stdout = teeTo(&stdoutBuf, e.Stdout)
	c.Stderr = teeTo(&stderrBuf, e.Stderr)

	err := c.Run()

	res := Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		res.Failed = true
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
			res.Err = err
			if ctx.Err() != nil {
				res.Err = ctx.Err()
			}
		}
	}

	logging.Debug("Command finished",
		"command", cmd.String(),
		"failed", res.Failed,
		"exit_code", res.ExitCode,
		"stdout", strings.TrimSpace(res.Stdout),
		"stderr", strings.TrimSpace(res.Stderr))
	return res
}

func teeTo(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
