package shared

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

const appDirName = "codex-swarm"

type Command struct {
	Name string
	Args []string
	// Env is the complete environment of the child process. A nil Env is
	// treated as an empty environment, never as "inherit".
	Env []string
	Dir string
}

type CommandOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

//go:generate mockgen -destination=mocks/command_runner_mock.go -package=mocks . CommandRunner
type CommandRunner interface {
	Run(ctx context.Context, command Command) (*CommandOutput, error)
}

type RuntimeInfo interface {
	GOOS() string
}

//go:generate mockgen -destination=mocks/user_info_mock.go -package=mocks . UserInfo
type UserInfo interface {
	HomeDir() (string, error)
	ConfigDir() (string, error)
	Cwd() (string, error)
	Getenv(key string) string
}

type DefaultCommandRunner struct{}

var _ CommandRunner = (*DefaultCommandRunner)(nil)

func (r *DefaultCommandRunner) Run(ctx context.Context, command Command) (*CommandOutput, error) {
	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Env = command.Env
	if cmd.Env == nil {
		cmd.Env = []string{}
	}
	if command.Dir != "" {
		cmd.Dir = command.Dir
	}
	detach(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := &CommandOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		output.ExitCode = cmd.ProcessState.ExitCode()
	}

	return output, err
}

type DefaultRuntimeInfo struct{}

func (r *DefaultRuntimeInfo) GOOS() string {
	return runtime.GOOS
}

type DefaultUserInfo struct {
	fs *afero.Afero
}

func NewDefaultUserInfo(fs *afero.Afero) *DefaultUserInfo {
	return &DefaultUserInfo{fs: fs}
}

func (u *DefaultUserInfo) HomeDir() (string, error) {
	return os.UserHomeDir()
}

func (u *DefaultUserInfo) ConfigDir() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, appDirName)
	if err := u.fs.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

func (u *DefaultUserInfo) Cwd() (string, error) {
	return os.Getwd()
}

func (u *DefaultUserInfo) Getenv(key string) string {
	return os.Getenv(key)
}

var _ UserInfo = (*DefaultUserInfo)(nil)
