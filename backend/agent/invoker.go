package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/furisto/codex-swarm/shared"
)

const DefaultCommand = "codex"

// InvocationError is returned when the agent could not be started or exited
// unsuccessfully. Stderr holds whatever the agent wrote before failing.
type InvocationError struct {
	Command  string
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *InvocationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("agent %s failed", e.Command)
	}
	return fmt.Sprintf("agent %s failed: %v", e.Command, e.Cause)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// Diagnostic is the captured stderr, or the launch error when the agent did
// not write anything to stderr.
func (e *InvocationError) Diagnostic() string {
	if strings.TrimSpace(e.Stderr) != "" {
		return e.Stderr
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return ""
}

type InvokerOption func(*CommandInvoker)

func WithCommand(command string, args ...string) InvokerOption {
	return func(i *CommandInvoker) {
		if command != "" {
			i.command = command
		}
		i.args = args
	}
}

// WithPath overrides the PATH handed to the agent. By default the PATH of the
// current process is used.
func WithPath(path string) InvokerOption {
	return func(i *CommandInvoker) {
		i.path = path
	}
}

// CommandInvoker sends a task description to the agent as its last argument.
// The agent only sees the PATH environment variable and is not cancelled when
// the caller's context is.
type CommandInvoker struct {
	runner  shared.CommandRunner
	command string
	args    []string
	path    string
}

func NewCommandInvoker(runner shared.CommandRunner, userInfo shared.UserInfo, opts ...InvokerOption) *CommandInvoker {
	invoker := &CommandInvoker{
		runner:  runner,
		command: DefaultCommand,
		path:    userInfo.Getenv("PATH"),
	}
	for _, opt := range opts {
		opt(invoker)
	}
	return invoker
}

func (i *CommandInvoker) Invoke(ctx context.Context, description string) (string, error) {
	args := make([]string, 0, len(i.args)+1)
	args = append(args, i.args...)
	args = append(args, description)

	command := shared.Command{
		Name: i.command,
		Args: args,
		Env:  i.environment(),
	}

	slog.DebugContext(ctx, "launching agent", "command", i.command, "args", len(args))
	output, err := i.runner.Run(context.WithoutCancel(ctx), command)
	if output == nil {
		output = &shared.CommandOutput{ExitCode: -1}
	}

	if err != nil {
		slog.DebugContext(ctx, "agent failed", "command", i.command, "exit_code", output.ExitCode, "error", err)
		return "", &InvocationError{
			Command:  i.command,
			ExitCode: output.ExitCode,
			Stderr:   output.Stderr,
			Cause:    err,
		}
	}

	return output.Stdout, nil
}

func (i *CommandInvoker) environment() []string {
	if i.path == "" {
		return []string{}
	}
	return []string{"PATH=" + i.path}
}
