package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/furisto/codex-swarm/backend/agent"
	"github.com/furisto/codex-swarm/backend/prompt"
	"github.com/furisto/codex-swarm/backend/task"
	"github.com/furisto/codex-swarm/frontend/cli/pkg/fail"
	"github.com/furisto/codex-swarm/frontend/cli/pkg/interactive"
	"github.com/furisto/codex-swarm/frontend/cli/pkg/terminal"
	"github.com/furisto/codex-swarm/shared"
	"github.com/furisto/codex-swarm/shared/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	uiModeAuto = "auto"
	uiModeMenu = "menu"
	uiModeLine = "line"
)

type interactiveOptions struct {
	MaxWorkers int
	Agent      string
	UIMode     string
}

func NewInteractiveCmd() *cobra.Command {
	options := interactiveOptions{}

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Collect tasks from a menu and run them in parallel",
		Long: `Collect tasks from a menu and run them in parallel.

Every task is sent to its own agent process. All agents of a run start at the
same time unless --max-workers is set, and one failing agent never affects
the others.`,
		Example: `  # Start the menu
  codex-swarm interactive

  # Run at most four agents at a time
  codex-swarm interactive --max-workers 4

  # Use a different agent executable
  codex-swarm interactive --agent /opt/codex/bin/codex`,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			configStore := getConfigStore(ctx)
			userInfo := getUserInfo(ctx)

			maxWorkers, err := resolveMaxWorkers(cmd, configStore, options.MaxWorkers)
			if err != nil {
				return fail.HandleError(cmd, err)
			}

			command := configStore.String(config.KeyAgentCommand)
			if options.Agent != "" {
				command = options.Agent
			}
			invoker := agent.NewCommandInvoker(
				getCommandRunner(ctx),
				userInfo,
				agent.WithCommand(command, configStore.Strings(config.KeyAgentArgs)...),
			)

			out := cmd.OutOrStdout()
			executor := task.NewExecutor(
				invoker,
				task.WithMaxWorkers(maxWorkers),
				task.WithSettledFunc(terminal.Progress(out)),
			)

			uiMode := configStore.String(config.KeyUIMode)
			if options.UIMode != "" {
				uiMode = options.UIMode
			}
			prompter, err := newPrompter(uiMode, cmd.InOrStdin(), out)
			if err != nil {
				return fail.HandleError(cmd, err)
			}

			templatesDir, err := resolveTemplatesDir(userInfo, configStore.String(config.KeyTemplatesDir))
			if err != nil {
				return fail.HandleError(cmd, err)
			}

			loop := interactive.NewLoop(
				task.NewStore(),
				executor,
				prompter,
				out,
				interactive.WithTemplates(prompt.NewLibrary(getFileSystem(ctx), templatesDir)),
			)

			if err := loop.Run(ctx); err != nil {
				return fail.HandleError(cmd, fail.NewTerminalError(err))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&options.MaxWorkers, "max-workers", 0, "maximum number of agents running at once, 0 for no limit (default from executor.max-workers)")
	cmd.Flags().StringVar(&options.Agent, "agent", "", "agent executable to launch for every task (default from agent.command)")
	cmd.Flags().StringVar(&options.UIMode, "ui", "", "prompt style: auto, menu or line (default from ui.mode)")

	return cmd
}

func resolveMaxWorkers(cmd *cobra.Command, configStore *config.Store, flagValue int) (int, error) {
	if cmd.Flags().Changed("max-workers") {
		if flagValue < 0 {
			return 0, fail.NewInvalidSettingError("--max-workers", strconv.Itoa(flagValue), fmt.Errorf("must not be negative"))
		}
		return flagValue, nil
	}

	maxWorkers := configStore.Int(config.KeyExecutorMaxWorker)
	if maxWorkers < 0 {
		return 0, fail.NewInvalidSettingError(config.KeyExecutorMaxWorker, strconv.Itoa(maxWorkers), fmt.Errorf("must not be negative"))
	}
	return maxWorkers, nil
}

func newPrompter(mode string, in io.Reader, out io.Writer) (interactive.Prompter, error) {
	switch mode {
	case uiModeMenu:
		return terminal.NewMenuPrompter(in, out), nil
	case uiModeLine:
		return terminal.NewLinePrompter(in, out), nil
	case uiModeAuto, "":
		if isTerminal(in) && isTerminal(out) {
			return terminal.NewMenuPrompter(in, out), nil
		}
		return terminal.NewLinePrompter(in, out), nil
	default:
		return nil, fail.NewInvalidSettingError(config.KeyUIMode, mode, fmt.Errorf("unknown ui mode %q, expected auto, menu or line", mode))
	}
}

func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func resolveTemplatesDir(userInfo shared.UserInfo, dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := userInfo.HomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
	}

	if filepath.IsAbs(dir) {
		return dir, nil
	}

	cwd, err := userInfo.Cwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return filepath.Join(cwd, dir), nil
}
