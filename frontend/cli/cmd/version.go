package cmd

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=x.y.z".
var Version = "unknown"

func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the version number of codex-swarm",
		Args:    cobra.NoArgs,
		GroupID: "system",
		RunE: func(cmd *cobra.Command, args []string) error {
			platform := getRuntimeInfo(cmd.Context()).GOOS() + "/" + runtime.GOARCH

			version, err := semver.NewVersion(Version)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "codex-swarm development build (%s)\n", platform)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "codex-swarm v%s (%s)\n", version, platform)
			return nil
		},
	}

	return cmd
}
