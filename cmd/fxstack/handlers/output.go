package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imamik/fxstack/internal/outputs"
)

// Output prints the stack outputs. With a name only that value is printed,
// which makes it usable in scripts: ssh $(fxstack output ssh_command).
func Output(ctx context.Context, configPath, name string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	out, err := readOutputs(ctx, cfg, loadSecrets())
	if err != nil {
		return err
	}

	if name != "" {
		value, ok := out.Map()[name]
		if !ok {
			return fmt.Errorf("unknown output %q: must be one of %v", name, outputs.Keys)
		}
		fmt.Fprintln(stdout, value)
		return nil
	}

	if jsonOutput {
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(b))
		return nil
	}

	printOutputs(out)
	return nil
}

func printOutputs(out outputs.Outputs) {
	values := out.Map()
	for _, key := range outputs.Keys {
		fmt.Fprintf(stdout, "  %-12s = %s\n", key, values[key])
	}
}
