// Package main is the entry point for the gitlet CLI.
//
// With arguments the binary runs one command in batch mode; without
// arguments it starts the interactive prompt. All functionality lives in
// the internal/cli package, which defines the cobra root command.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process. During development, they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"github.com/shinji-kodama/gitlet/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
