package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/furisto/codex-swarm/shared/config"
	"github.com/spf13/cobra"
)

func NewConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Example: `  # Get the agent every task is sent to
  codex-swarm config get agent.command

  # Get every log setting
  codex-swarm config get log`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			configStore := getConfigStore(cmd.Context())

			err := validateConfigKey(key)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			value, found := configStore.Get(key)
			if !found {
				if defaultValue := config.Describe(key).Default; defaultValue != "" {
					fmt.Fprintln(out, defaultValue)
				}
				return nil
			}

			if config.IsLeafValue(value.Raw()) {
				fmt.Fprintln(out, formatConfigValue(value.Raw()))
			} else {
				renderConfigValue(out, value.Raw(), key)
			}

			return nil
		},
	}

	return cmd
}

func renderConfigValue(out io.Writer, value any, prefix string) {
	if m, ok := value.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := m[k]
			fullKey := prefix + "." + k
			if config.IsLeafValue(v) {
				fmt.Fprintf(out, "%s: %s\n", fullKey, formatConfigValue(v))
			} else {
				renderConfigValue(out, v, fullKey)
			}
		}
	}
}
