// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"

	"github.com/creachadair/jlink/internal/buildinfo"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "jlink %s (commit %s, %s)\n",
				buildinfo.Version, buildinfo.Commit, buildinfo.GoVersion())
			return nil
		},
	}
}
