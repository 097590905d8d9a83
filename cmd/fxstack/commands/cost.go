package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fxstack/cmd/fxstack/handlers"
)

// Cost returns the command for stack cost estimation.
func Cost() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Show the expected monthly cost of the stack",
		Long: `Estimate the stack's cost using live Hetzner Cloud pricing.

The estimate covers the server and its primary IPv4 address in the
configured location, with net and gross monthly totals.
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cost(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fxstack.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
