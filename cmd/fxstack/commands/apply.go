package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fxstack/cmd/fxstack/handlers"
)

// Apply returns the command for provisioning the stack.
//
// Optional flags:
//
//	--config, -c: Path to stack configuration YAML file (default: auto-detect fxstack.yaml)
//	--no-wait: Do not wait for the service health check
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token (required)
//	REGISTRY_TOKEN: Container registry pull token (required)
func Apply() *cobra.Command {
	var (
		configPath string
		opts       handlers.ApplyOptions
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the stack",
		Long: `Create or update the stack on Hetzner Cloud.

This command creates the SSH key, the firewall (22, 80 and 443 inbound,
everything outbound) and the server. The server boots through cloud-init,
logs in to the registry, pulls the image and runs it. Apply then waits
until the service answers on /health.

Existing resources are reused, so apply can be re-run at any time.

If no config file is specified, it looks for fxstack.yaml in the current
directory and its parents. Use 'fxstack init' to create one.

Examples:
  # Create the stack using fxstack.yaml
  fxstack apply

  # Use a specific config file and skip the health check
  fxstack apply -c staging.yaml --no-wait`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fxstack.yaml)")
	cmd.Flags().BoolVar(&opts.NoWait, "no-wait", false, "Do not wait for the service to become healthy")

	return cmd
}
