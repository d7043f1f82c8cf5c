// Package main is the entry point for the portsweep CLI.
//
// The binary scans a target host for open TCP ports using a pool of
// concurrent connection probes. All functionality lives in the
// internal/cli package; main only injects build-time version info.
package main

import (
	"github.com/mmr-tortoise/portsweep/internal/cli"
)

// version, commit, and date are set by the release pipeline at build
// time via ldflags. They default to development placeholders.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
