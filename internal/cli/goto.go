// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"errors"
	"fmt"

	"github.com/creachadair/jlink/editor"
	"github.com/creachadair/jlink/session"
	"github.com/spf13/cobra"
)

func newGotoCommand(opts *options) *cobra.Command {
	var showHistory bool
	cmd := &cobra.Command{
		Use:   "goto FILE LINE COL",
		Short: "Print the location of the definition of a value",
		Long: `Find the definition of the value at the given 1-based line and column
of FILE, using the mapping of the settings file, and print its location as
PATH:LINE.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.loadSettings()
			if err != nil {
				return err
			}
			line, col, err := lineCol(args[1], args[2])
			if err != nil {
				return err
			}
			buf, err := editor.OpenBuffer(args[0])
			if err != nil {
				return err
			}
			buf.SetCurrentPos(buf.LineToPosition(line) + col)

			// There is no view to wait for, so place the caret at once.
			st := *settings
			st.JumpToLineDelay = 0
			s := session.New(buf, &st, loggerFor(cmd).WithName("session"))
			defer s.Close()

			if !s.GoToDefinition() {
				return errors.New("no definition found")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, editor.CurrentLocation(buf))
			if showHistory {
				for i, loc := range s.Navigator().History() {
					fmt.Fprintf(out, "  %d. %s\n", i+1, loc)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHistory, "history", false, "also print the navigation history")
	return cmd
}
