// Package main provides the entry point for focus.
//
// focus is a task manager built around a Today list, a Backlog list and a
// single current task per work context. Without arguments it opens the
// terminal UI; subcommands edit the same snapshot from the shell.
package main

import (
	"os"

	"github.com/riordanpawley/focus/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
