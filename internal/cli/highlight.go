// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"os"

	"github.com/creachadair/jlink/editor"
	"github.com/creachadair/jlink/highlight"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// terminalHeight reports the number of rows of the terminal on stdout, if
// stdout is a terminal.
var terminalHeight = func() (int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	if _, h, err := term.GetSize(fd); err == nil && h > 0 {
		return h, true
	}
	return 0, false
}

func newHighlightCommand(opts *options) *cobra.Command {
	var first, lines int
	cmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "List the property names that would be underlined in a view",
		Long: `Print the property names in view that match a source path of the
settings for FILE, one per line as FILE:LINE:COL: NAME. The view starts at
the 1-based line given by --first and spans --lines lines; by default, the
height of the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.loadSettings()
			if err != nil {
				return err
			}
			if first < 1 {
				return fmt.Errorf("invalid --first %d", first)
			}
			if lines <= 0 {
				lines = editor.DefaultLinesOnScreen
				if h, ok := terminalHeight(); ok {
					lines = h
				}
			}
			buf, err := editor.OpenBuffer(args[0])
			if err != nil {
				return err
			}
			buf.SetView(first-1, lines)

			hl := highlight.New(buf, settings, loggerFor(cmd).WithName("highlight"))
			hl.Tick()
			out := cmd.OutOrStdout()
			text := buf.Text()
			for _, r := range buf.Indicated(highlight.IndicatorID) {
				line := buf.PositionToLine(r.Start)
				col := r.Start - buf.LineToPosition(line)
				fmt.Fprintf(out, "%s:%d:%d: %s\n", args[0], line+1, col+1, text[r.Start:r.End])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&first, "first", 1, "first line in view (1-based)")
	cmd.Flags().IntVar(&lines, "lines", 0, "number of lines in view (0 means the terminal height)")
	return cmd
}
