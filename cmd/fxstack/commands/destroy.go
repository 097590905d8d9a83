package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fxstack/cmd/fxstack/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes the server, firewall and SSH key from
// Hetzner Cloud, then deletes the stored outputs.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the stack and all associated resources",
		Long: `Destroy removes all stack resources from Hetzner Cloud.

This command deletes, in order:
  - The server
  - The firewall
  - The SSH key
  - Anything else labelled with the stack name

Missing resources are skipped, so destroy can be re-run after a partial
failure. outputs.json and its object storage copy are removed last.

Example:
  fxstack destroy -c fxstack.yaml

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fxstack.yaml)")

	return cmd
}
