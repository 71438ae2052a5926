package cmd

import (
	"sort"

	"github.com/furisto/codex-swarm/shared/config"
	"github.com/spf13/cobra"
)

const (
	settingSourceConfig  = "config"
	settingSourceDefault = "default"
)

type DisplaySetting struct {
	Key    string `json:"key" yaml:"key" detail:"default"`
	Value  string `json:"value" yaml:"value" detail:"default"`
	Source string `json:"source" yaml:"source" detail:"full"`
}

type configListOptions struct {
	RenderOptions RenderOptions
}

func NewConfigListCmd() *cobra.Command {
	options := configListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List all current configuration values",
		Aliases: []string{"ls"},
		Example: `  # Show every setting, including defaults
  codex-swarm config list

  # Show where each value comes from
  codex-swarm config list --wide

  # Machine readable output
  codex-swarm config list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configStore := getConfigStore(cmd.Context())
			settings := listSettings(configStore)

			return getRenderer(cmd.Context()).Render(cmd.OutOrStdout(), settings, &options.RenderOptions)
		},
	}

	addRenderOptions(cmd, &options.RenderOptions)
	return cmd
}

// listSettings returns every supported key in declaration order followed by
// any other key found in the configuration file.
func listSettings(configStore *config.Store) []*DisplaySetting {
	stored := configStore.Settings()

	var settings []*DisplaySetting
	for _, key := range config.SupportedKeys() {
		if value, ok := stored[key]; ok {
			settings = append(settings, &DisplaySetting{Key: key, Value: formatConfigValue(value), Source: settingSourceConfig})
			delete(stored, key)
			continue
		}

		settings = append(settings, &DisplaySetting{Key: key, Value: config.Describe(key).Default, Source: settingSourceDefault})
	}

	unknown := make([]string, 0, len(stored))
	for key := range stored {
		unknown = append(unknown, key)
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		settings = append(settings, &DisplaySetting{Key: key, Value: formatConfigValue(stored[key]), Source: settingSourceConfig})
	}

	return settings
}
