package cmd

import (
	"fmt"

	"github.com/rohmanhakim/atcoder-cli/internal/build"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat == formatJSON {
			return writeJSON(cmd.OutOrStdout(), build.Current())
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), build.FullVersion())
		return err
	},
}
