// Package main is the entry point for the fxstack CLI.
//
// fxstack provisions a single Hetzner Cloud server with its firewall and SSH
// key, boots it through cloud-init into a container, and exports the
// resulting outputs. The same binary runs the currency conversion API inside
// that container.
//
// Commands: init, apply, destroy, output, cloudinit, logs, cost, serve.
//
// For detailed usage information, run:
//
//	fxstack --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/fxstack/cmd/fxstack/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
