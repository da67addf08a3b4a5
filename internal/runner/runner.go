// Package runner executes shell commands and aggregates their results.
package runner

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"syscall"
)

// Result captures the outcome of running one command.
//
// OK implies ExitCode, Signal, and Message are all absent. !OK implies at
// least one of them is present: ExitCode for a non-zero exit, Signal when
// the child was killed, Message always for failures (and alone for spawn
// failures).
type Result struct {
	Command  string
	OK       bool
	Stdout   string
	Stderr   string
	ExitCode *int
	Signal   string
	Message  string
}

// Runner executes a single shell command
type Runner interface {
	// Run executes the command and classifies the outcome. It never
	// returns an error: every failure mode is folded into the Result.
	Run(ctx context.Context, command string) Result
}

// ShellRunner hands the command string to sh for interpretation, so pipes,
// redirects, and shell built-ins work. It inherits the process's working
// directory and environment.
type ShellRunner struct{}

// NewShellRunner creates a ShellRunner
func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

// Run implements Runner
func (r *ShellRunner) Run(ctx context.Context, command string) Result {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		Command: command,
		Stdout:  Bytes(stdout.Bytes()).String(),
		Stderr:  Bytes(stderr.Bytes()).String(),
	}

	if err == nil {
		result.OK = true
		return result
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			result.Signal = ws.Signal().String()
			result.Message = fmt.Sprintf("command `%s` killed by signal %s", command, result.Signal)
		} else {
			code := exitErr.ExitCode()
			result.ExitCode = &code
			result.Message = fmt.Sprintf("command `%s` exited with code %d", command, code)
		}
		return result
	}

	// The shell could not be spawned at all: only a message, no exit
	// code or signal, and no captured output.
	result.Stdout = ""
	result.Stderr = ""
	result.Message = err.Error()
	return result
}
