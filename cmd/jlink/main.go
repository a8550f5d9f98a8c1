// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jlink resolves cross-references between JSON documents.
package main

import (
	"fmt"
	"os"

	"github.com/creachadair/jlink/internal/cli"
	"github.com/creachadair/jlink/internal/logger"
)

func main() {
	exitCode := 0
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jlink:", err)
		exitCode = 1
	}
	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
