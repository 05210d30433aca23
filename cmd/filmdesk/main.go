// Package main provides the entry point for the filmdesk CLI tool.
package main

import (
	"github.com/filmdesk/filmdesk/internal/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
