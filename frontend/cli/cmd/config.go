package cmd

import (
	"fmt"
	"strings"

	"github.com/furisto/codex-swarm/shared/config"
	"github.com/spf13/cobra"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		GroupID: "system",
	}

	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigGetCmd())
	cmd.AddCommand(NewConfigUnsetCmd())
	cmd.AddCommand(NewConfigDescribeCmd())
	cmd.AddCommand(NewConfigListCmd())

	return cmd
}

func validateConfigKey(key string) error {
	if config.IsSupportedKey(key) {
		return nil
	}

	return fmt.Errorf("unsupported configuration key %q, supported keys are: %s", key, strings.Join(config.SupportedKeys(), ", "))
}

// validateLeafKey is stricter than validateConfigKey and rejects sections
// such as "agent".
func validateLeafKey(key string) error {
	if err := validateConfigKey(key); err != nil {
		return err
	}

	if config.Describe(key).Key == "" {
		return fmt.Errorf("%q is a section, use one of its keys instead", key)
	}
	return nil
}

func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.SupportedKeys(), cobra.ShellCompDirectiveNoFileComp
	}

	return []string{}, cobra.ShellCompDirectiveDefault
}

func formatConfigValue(value any) string {
	switch v := value.(type) {
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, " ")
	case []string:
		return strings.Join(v, " ")
	default:
		return fmt.Sprint(v)
	}
}
