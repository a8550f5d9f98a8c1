// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"

	"github.com/creachadair/jlink/editor"
	"github.com/creachadair/jlink/resolve"
	"github.com/spf13/cobra"
)

func newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE LINE COL",
		Short: "Print the dotted path of the property at a position",
		Long: `Print the dotted path of the property whose name or value is at the
given 1-based line and column of a JSON file, followed by "name" or "value".
For a value, the normalized value is printed too.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, col, err := lineCol(args[1], args[2])
			if err != nil {
				return err
			}
			buf, err := editor.OpenBuffer(args[0])
			if err != nil {
				return err
			}
			ctx := resolve.At(buf, line, col)
			w := ctx.SelectedProperty()
			if w == nil {
				return fmt.Errorf("%s:%s:%s: no property at this position", args[0], args[1], args[2])
			}
			out := cmd.OutOrStdout()
			if !ctx.IsValue() {
				fmt.Fprintf(out, "%s\tname\n", w)
			} else if v, ok := ctx.SelectedValue(); ok {
				fmt.Fprintf(out, "%s\tvalue\t%s\n", w, v)
			} else {
				fmt.Fprintf(out, "%s\tvalue\n", w)
			}
			return nil
		},
	}
}
