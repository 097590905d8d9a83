// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the fxstack CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fxstack",
		Short:        "Deploy a currency conversion API to Hetzner Cloud",
		SilenceUsage: true,
	}

	// Stack lifecycle
	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Output())

	// Inspection
	cmd.AddCommand(CloudInit())
	cmd.AddCommand(Logs())
	cmd.AddCommand(Cost())

	// Runs inside the container
	cmd.AddCommand(Serve())

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
