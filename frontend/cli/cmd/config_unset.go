package cmd

import (
	"fmt"

	"github.com/furisto/codex-swarm/frontend/cli/pkg/fail"
	"github.com/spf13/cobra"
)

func NewConfigUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Unset a configuration value",
		Long:  `The "unset" command allows you to unset a configuration value. The key falls back to its default.`,
		Example: `  # Go back to running every task at once
  codex-swarm config unset executor.max-workers

  # Remove every log setting
  codex-swarm config unset log`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := validateConfigKey(key); err != nil {
				return err
			}

			configStore := getConfigStore(cmd.Context())
			if err := configStore.Delete(key); err != nil {
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
