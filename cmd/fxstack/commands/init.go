package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fxstack/cmd/fxstack/handlers"
	"github.com/imamik/fxstack/internal/config"
)

// Init returns the command for interactively creating a stack configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "fxstack.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a stack configuration",
		Long: `Interactively create a stack configuration file.

This command asks for the few values a stack needs:

  - Stack name and location
  - Server type
  - Container registry, image and tag
  - Whether to generate a dedicated SSH key

Everything else gets a default and can be edited in the file afterwards.
Tokens are never written to the file; export HCLOUD_TOKEN and
REGISTRY_TOKEN instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
