// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cli implements the jlink command line tool, which exposes the
// cross-reference engine over files on disk using a headless editor.
package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/jlink/internal/logger"
	"github.com/creachadair/jlink/mapping"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

// options are the flags shared by every command.
type options struct {
	settings string
	logLevel string
}

// NewRootCommand returns the jlink command with all its subcommands.
func NewRootCommand() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:   "jlink",
		Short: "Resolve cross-references between JSON documents",
		Long: `jlink follows references between JSON documents.

A settings file maps a property path in source files (such as ref.id) to a
property path in destination files (such as types.id). Given a position on
a source value, jlink finds the destination entry with the same value.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			level, err := zapcore.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			cmd.SetContext(logger.WithLogger(cmd.Context(), logger.Get(int8(level))))
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.settings, "settings", "", "path of the settings file (.json, .hujson, .yaml, .toml)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "minimum level of log entries written to stderr")

	root.AddCommand(
		newScanCommand(),
		newResolveCommand(),
		newGotoCommand(opts),
		newHighlightCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the jlink command with the arguments of the process.
func Execute() error { return NewRootCommand().Execute() }

// loadSettings reads the settings file named by the --settings flag.
func (o *options) loadSettings() (*mapping.Settings, error) {
	if o.settings == "" {
		return nil, errors.New("a --settings file is required")
	}
	return mapping.Load(o.settings)
}

func loggerFor(cmd *cobra.Command) logr.Logger { return *logger.FromContext(cmd.Context()) }

// lineCol parses 1-based line and column arguments, and returns them as
// 0-based offsets.
func lineCol(line, col string) (int, int, error) {
	ln, err := strconv.Atoi(line)
	if err != nil || ln < 1 {
		return 0, 0, fmt.Errorf("invalid line %q", line)
	}
	cn, err := strconv.Atoi(col)
	if err != nil || cn < 1 {
		return 0, 0, fmt.Errorf("invalid column %q", col)
	}
	return ln - 1, cn - 1, nil
}
