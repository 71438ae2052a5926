package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/furisto/codex-swarm/frontend/cli/pkg/fail"
	"github.com/furisto/codex-swarm/shared"
	"github.com/furisto/codex-swarm/shared/config"
	"github.com/furisto/codex-swarm/shared/conv"
	"github.com/furisto/codex-swarm/shared/mocks"
	"go.uber.org/mock/gomock"
)

const mainMenu = "What would you like to do?\n" +
	"  1) Add Task\n" +
	"  2) Delete Task\n" +
	"  3) List Tasks\n" +
	"  4) Run Tasks\n" +
	"  5) Exit\n" +
	"> "

const addPrompts = "Use a predefined prompt? [y/N] " +
	"Enter task name: " +
	"Enter task description (or /template): "

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func expectAgent(runner *mocks.MockCommandRunner, command shared.Command, output *shared.CommandOutput, err error) *gomock.Call {
	return runner.EXPECT().Run(gomock.Any(), command).Return(output, err)
}

func TestInteractive(t *testing.T) {
	setup := &TestSetup{}

	setup.RunTests(t, []TestScenario{
		{
			Name:    "exit right away",
			Command: []string{"interactive"},
			Stdin:   script("5"),
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu),
			},
		},
		{
			Name:    "end of input exits",
			Command: []string{"interactive"},
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu),
			},
		},
		{
			Name:    "add and run a task",
			Command: []string{"interactive"},
			Stdin:   script("1", "n", "build", "make it compile", "4", "5"),
			SetupCommandRunner: func(runner *mocks.MockCommandRunner) {
				expectAgent(runner, shared.Command{
					Name: "codex",
					Args: []string{"make it compile"},
					Env:  []string{"PATH=" + testPath},
				}, &shared.CommandOutput{Stdout: "compiled"}, nil)
			},
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu + addPrompts + "Task \"build\" added.\n" +
					mainMenu + "Running 1 task(s)...\n" +
					"[1/1] build done\n" +
					"\nTask results:\n" +
					"Task response for 'build': compiled\n" +
					mainMenu),
			},
		},
		{
			Name:    "failed task reports stderr",
			Command: []string{"interactive"},
			Stdin:   script("1", "n", "build", "make it compile", "4", "5"),
			SetupCommandRunner: func(runner *mocks.MockCommandRunner) {
				expectAgent(runner, shared.Command{
					Name: "codex",
					Args: []string{"make it compile"},
					Env:  []string{"PATH=" + testPath},
				}, &shared.CommandOutput{Stderr: "model overloaded", ExitCode: 1}, errors.New("exit status 1"))
			},
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu + addPrompts + "Task \"build\" added.\n" +
					mainMenu + "Running 1 task(s)...\n" +
					"[1/1] build failed\n" +
					"\nTask results:\n" +
					"Task 'build' failed: model overloaded\n" +
					mainMenu),
			},
		},
		{
			Name:    "agent that cannot be launched",
			Command: []string{"interactive", "--agent", "missing-agent"},
			Stdin:   script("1", "n", "build", "make it compile", "4", "5"),
			SetupCommandRunner: func(runner *mocks.MockCommandRunner) {
				expectAgent(runner, shared.Command{
					Name: "missing-agent",
					Args: []string{"make it compile"},
					Env:  []string{"PATH=" + testPath},
				}, &shared.CommandOutput{ExitCode: -1}, errors.New(`exec: "missing-agent": executable file not found in $PATH`))
			},
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu + addPrompts + "Task \"build\" added.\n" +
					mainMenu + "Running 1 task(s)...\n" +
					"[1/1] build failed\n" +
					"\nTask results:\n" +
					"Task 'build' failed: exec: \"missing-agent\": executable file not found in $PATH\n" +
					mainMenu),
			},
		},
		{
			Name:    "one failure does not affect the other tasks",
			Command: []string{"interactive", "--max-workers", "1"},
			Stdin: script(
				"1", "n", "build", "make it compile",
				"1", "n", "lint", "fix lint",
				"1", "n", "docs", "write docs",
				"4", "5",
			),
			SetupCommandRunner: func(runner *mocks.MockCommandRunner) {
				env := []string{"PATH=" + testPath}
				expectAgent(runner, shared.Command{Name: "codex", Args: []string{"make it compile"}, Env: env},
					&shared.CommandOutput{Stdout: "ok"}, nil)
				expectAgent(runner, shared.Command{Name: "codex", Args: []string{"fix lint"}, Env: env},
					&shared.CommandOutput{Stderr: "lint exploded", ExitCode: 2}, errors.New("exit status 2"))
				expectAgent(runner, shared.Command{Name: "codex", Args: []string{"write docs"}, Env: env},
					&shared.CommandOutput{Stdout: "documented"}, nil)
			},
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu + addPrompts + "Task \"build\" added.\n" +
					mainMenu + addPrompts + "Task \"lint\" added.\n" +
					mainMenu + addPrompts + "Task \"docs\" added.\n" +
					mainMenu + "Running 3 task(s)...\n" +
					"[1/3] build done\n" +
					"[2/3] lint failed\n" +
					"[3/3] docs done\n" +
					"\nTask results:\n" +
					"Task response for 'build': ok\n" +
					"Task 'lint' failed: lint exploded\n" +
					"Task response for 'docs': documented\n" +
					mainMenu),
			},
		},
		{
			Name:    "agent command and arguments from config",
			Command: []string{"interactive"},
			Stdin:   script("1", "n", "build", "make it compile", "4", "5"),
			SetupFileSystem: writeConfig(`agent:
  command: /opt/codex/bin/codex
  args:
    - exec
    - --full-auto
`),
			SetupCommandRunner: func(runner *mocks.MockCommandRunner) {
				expectAgent(runner, shared.Command{
					Name: "/opt/codex/bin/codex",
					Args: []string{"exec", "--full-auto", "make it compile"},
					Env:  []string{"PATH=" + testPath},
				}, &shared.CommandOutput{Stdout: "compiled"}, nil)
			},
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu + addPrompts + "Task \"build\" added.\n" +
					mainMenu + "Running 1 task(s)...\n" +
					"[1/1] build done\n" +
					"\nTask results:\n" +
					"Task response for 'build': compiled\n" +
					mainMenu),
			},
		},
		{
			Name:    "predefined prompt",
			Command: []string{"interactive"},
			Stdin:   script("1", "y", "2", "3", "5"),
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu +
					"Use a predefined prompt? [y/N] " +
					"Choose a predefined prompt:\n" +
					"  1) Explain Codebase\n" +
					"  2) Fix Build Errors\n" +
					"  3) Find Bugs\n" +
					"> " +
					"Task \"fix any build errors\" added.\n" +
					mainMenu +
					"Current tasks:\n" +
					"- fix any build errors: fix any build errors\n" +
					mainMenu),
			},
		},
		{
			Name:    "description from a template",
			Command: []string{"interactive"},
			Stdin:   script("1", "n", "review", "/template review", "3", "5"),
			SetupFileSystem: writeFile(testWorkDir+"/.swarm/review/PROMPT.txt", "Review the last commit.\n"),
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu + addPrompts + "Task \"review\" added.\n" +
					mainMenu +
					"Current tasks:\n" +
					"- review: Review the last commit.\n" +
					mainMenu),
			},
		},
		{
			Name:    "empty run",
			Command: []string{"interactive"},
			Stdin:   script("4", "2", "3", "5"),
			Expected: TestExpectation{
				Stdout: conv.Ptr(mainMenu + "No tasks to run.\n" +
					mainMenu + "No tasks to delete.\n" +
					mainMenu + "No tasks available.\n" +
					mainMenu),
			},
		},
		{
			Name:    "negative max workers",
			Command: []string{"interactive", "--max-workers", "-1"},
			Expected: TestExpectation{
				Error: fail.NewInvalidSettingError("--max-workers", "-1", fmt.Errorf("must not be negative")).Error(),
			},
		},
		{
			Name:            "invalid ui mode in config",
			Command:         []string{"interactive"},
			SetupFileSystem: writeConfig("ui:\n  mode: fancy\n"),
			Expected: TestExpectation{
				Error: fail.NewInvalidSettingError(config.KeyUIMode, "fancy", fmt.Errorf("unknown ui mode %q, expected auto, menu or line", "fancy")).Error(),
			},
		},
		{
			Name:    "positional arguments are rejected",
			Command: []string{"interactive", "extra"},
			Expected: TestExpectation{
				Error: `unknown command "extra" for "codex-swarm interactive"`,
			},
		},
	})
}
