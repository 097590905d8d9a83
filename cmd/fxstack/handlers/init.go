package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/fxstack/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// isInteractive reports whether stdin and stdout are terminals.
	isInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}

	// runWizard runs the configuration wizard.
	runWizard = config.RunWizard

	// saveConfig writes the config to a file.
	saveConfig = config.Save
)

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if !isInteractive() {
		return errors.New("init needs an interactive terminal; write fxstack.yaml by hand instead")
	}

	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()

	if err := saveConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "fxstack - currency conversion API on Hetzner Cloud")
	fmt.Fprintln(stdout, "==================================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard creates a stack configuration with sensible defaults.")
	fmt.Fprintln(stdout)
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Stack Summary")
	fmt.Fprintln(stdout, "-------------")
	fmt.Fprintf(stdout, "  Name:        %s\n", cfg.Name)
	fmt.Fprintf(stdout, "  Location:    %s\n", cfg.Location)
	fmt.Fprintf(stdout, "  Server type: %s\n", cfg.ServerType)
	fmt.Fprintf(stdout, "  Image:       %s\n", cfg.Container.ImageRef())
	if cfg.SSH.Generate {
		fmt.Fprintln(stdout, "  SSH key:     generated on first apply")
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintln(stdout, "  1. Export your tokens:")
	fmt.Fprintln(stdout, "     export HCLOUD_TOKEN=<your-token>")
	fmt.Fprintln(stdout, "     export REGISTRY_TOKEN=<registry-pull-token>")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  2. Review %s if needed\n", outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "  3. Create your stack:")
	fmt.Fprintln(stdout, "     fxstack apply")
	fmt.Fprintln(stdout)
}
