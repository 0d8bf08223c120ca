package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the page cache.",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached page from all configured tiers.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithAtCoder(cmd, func(a app) error {
			if err := a.atcoder.ClearCache(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(a.out, "cache cleared")
			return err
		})
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
