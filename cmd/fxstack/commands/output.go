package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fxstack/cmd/fxstack/handlers"
	"github.com/imamik/fxstack/internal/outputs"
)

// Output returns the command that prints the stack outputs.
func Output() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "output [name]",
		Short: "Show the stack outputs",
		Long: `Show the outputs of the last apply.

Without a name all outputs are printed. With a name only its value is
printed, which is handy in scripts:

  $(fxstack output ssh_command)
  curl "$(fxstack output http_url)/health"`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: outputs.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return handlers.Output(cmd.Context(), configPath, name, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fxstack.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
