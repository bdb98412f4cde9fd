package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legend-exp/detinfo/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "detinfo %s (git %s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		},
	}
}
