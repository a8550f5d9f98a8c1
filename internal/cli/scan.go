// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"fmt"
	"os"

	"github.com/creachadair/jlink"
	"github.com/creachadair/jlink/docscan"
	"github.com/spf13/cobra"
)

func newScanCommand() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "scan FILE PATH...",
		Short: "List the values of dotted property paths in a JSON file",
		Long: `Scan a JSON file for the given dotted property paths, and print each
matching value as FILE:LINE: PATH = VALUE.

In valid mode, the document is tokenized and the enclosing properties of
each value are checked against the path. In lines mode, each line is
searched for the final segment of the path alone, which works for files
that are not well-formed. The default, auto, tries valid mode and falls
back to lines mode on a syntax error.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			words := make([]*jlink.Word, 0, len(args)-1)
			for _, arg := range args[1:] {
				w, err := jlink.ParseWord(arg)
				if err != nil {
					return err
				}
				words = append(words, w)
			}
			out := cmd.OutOrStdout()
			report := func(m docscan.Match) {
				fmt.Fprintf(out, "%s:%d: %s = %s\n", file, m.Line+1, m.Word, m.Value)
			}

			log := loggerFor(cmd)
			switch mode {
			case "auto":
				got, err := docscan.ScanFile(file, words, report)
				if err != nil {
					return err
				}
				log.V(1).Info("scanned", "file", file, "mode", got.String())
				return nil
			case "valid", "lines":
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				if mode == "valid" {
					return docscan.ScanValid(f, words, report)
				}
				return docscan.ScanLines(f, words, report)
			default:
				return fmt.Errorf("invalid --mode %q (want auto, valid, or lines)", mode)
			}
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "auto", "scan strategy: auto, valid, or lines")
	return cmd
}
