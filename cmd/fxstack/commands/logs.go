package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fxstack/cmd/fxstack/handlers"
)

// Logs returns the command that streams the service's container logs.
func Logs() *cobra.Command {
	var (
		configPath string
		opts       handlers.LogsOptions
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the service logs from the server",
		Long: `Show the container logs over SSH.

The server address comes from the stack outputs and the key from
ssh.private_key_path in the configuration.

Examples:
  fxstack logs --tail 200
  fxstack logs -f`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Logs(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fxstack.yaml)")
	cmd.Flags().IntVar(&opts.Tail, "tail", 100, "Number of lines to show from the end (0 for all)")
	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Follow log output")

	return cmd
}
