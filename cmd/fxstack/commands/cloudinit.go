package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fxstack/cmd/fxstack/handlers"
)

// CloudInit returns the command that prints the rendered user-data.
func CloudInit() *cobra.Command {
	var (
		configPath  string
		showSecrets bool
	)

	cmd := &cobra.Command{
		Use:   "cloudinit",
		Short: "Print the cloud-init user-data for the server",
		Long: `Print the cloud-init document the server boots with.

The registry token is masked unless --show-secrets is given, in which case
REGISTRY_TOKEN must be set.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.CloudInit(configPath, showSecrets)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fxstack.yaml)")
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Include the registry token")

	return cmd
}
