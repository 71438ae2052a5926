package cmd

import (
	"fmt"

	"github.com/furisto/codex-swarm/shared/config"
	"github.com/spf13/cobra"
)

func NewConfigDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "describe <key>",
		Short:             "Describe a configuration value",
		Long:              `The "describe" command allows you to describe a configuration value`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			description := config.Describe(key)
			if description.Key == "" {
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			defaultValue := description.Default
			if defaultValue == "" {
				defaultValue = "(none)"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", key)
			fmt.Fprintf(out, "  %s\n\n", description.Description)
			fmt.Fprintf(out, "  Type                               Default\n")
			fmt.Fprintf(out, "  %-34s %s\n\n", description.Type, defaultValue)
			fmt.Fprintf(out, "  Example: %s\n", description.Example)

			return nil
		},
	}

	return cmd
}
