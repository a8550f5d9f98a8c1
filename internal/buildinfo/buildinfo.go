// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package buildinfo reports version metadata of the running binary.
package buildinfo

import "runtime/debug"

// Version and Commit are set at build time via -ldflags -X.
var (
	Version = "v0.0.0-dev"
	Commit  = "unknown"
)

// GoVersion reports the version of Go the binary was built with.
func GoVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi.GoVersion
	}
	return "unknown"
}
