package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/furisto/codex-swarm/frontend/cli/pkg/fail"
	"github.com/furisto/codex-swarm/shared/config"
	"github.com/spf13/cobra"
)

func NewConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  `The "config set" command allows you to set a configuration value`,
		Example: `  # Run at most four agents at a time
  codex-swarm config set executor.max-workers 4

  # Pass extra arguments to the agent before the task description
  codex-swarm config set agent.args "exec --full-auto"`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			if err := validateLeafKey(key); err != nil {
				return err
			}

			value, err := parseSetting(key, raw)
			if err != nil {
				return fail.HandleError(cmd, fail.NewInvalidSettingError(key, raw, err))
			}

			configStore := getConfigStore(cmd.Context())
			if err := configStore.Set(key, value); err != nil {
				return fail.HandleError(cmd, err)
			}

			if err := configStore.Flush(); err != nil {
				return fail.HandleError(cmd, fmt.Errorf("failed to save configuration: %w", err))
			}

			return nil
		},
	}

	return cmd
}

// parseSetting converts the command line form of a value into what is stored
// in the configuration file.
func parseSetting(key string, raw string) (any, error) {
	switch key {
	case config.KeyExecutorMaxWorker:
		maxWorkers, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("expected an integer: %w", err)
		}
		if maxWorkers < 0 {
			return nil, fmt.Errorf("must not be negative")
		}
		return maxWorkers, nil

	case config.KeyAgentArgs:
		return strings.Fields(raw), nil

	case config.KeyAgentCommand, config.KeyTemplatesDir:
		if strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("must not be empty")
		}
		return raw, nil

	case config.KeyUIMode:
		return oneOf(raw, uiModeAuto, uiModeMenu, uiModeLine)

	case config.KeyLogLevel:
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, err
		}
		return strings.ToLower(raw), nil

	case config.KeyLogFormat:
		return oneOf(raw, "text", "json")
	}

	return raw, nil
}

func oneOf(value string, allowed ...string) (string, error) {
	for _, candidate := range allowed {
		if value == candidate {
			return value, nil
		}
	}
	return "", fmt.Errorf("expected one of %s", strings.Join(allowed, ", "))
}
