package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/fxstack/internal/config"
	"github.com/imamik/fxstack/internal/outputs"
	"github.com/imamik/fxstack/internal/provisioning"
	"github.com/imamik/fxstack/internal/provisioning/compute"
	"github.com/imamik/fxstack/internal/provisioning/infrastructure"
	"github.com/imamik/fxstack/internal/provisioning/ready"
)

// ApplyOptions tune the apply command.
type ApplyOptions struct {
	// NoWait skips polling the service's health endpoint.
	NoWait bool
}

// newApplyPhases returns the phases apply runs (for testing injection).
var newApplyPhases = applyPhases

// applyPhases returns the phases apply runs, in order.
func applyPhases(opts ApplyOptions) []provisioning.Phase {
	phases := []provisioning.Phase{
		provisioning.NewValidationPhase(),
		infrastructure.NewProvisioner(),
		compute.NewProvisioner(),
	}
	if !opts.NoWait {
		phases = append(phases, ready.NewProvisioner())
	}
	return phases
}

// Apply provisions the stack on Hetzner Cloud.
//
// This function runs the complete provisioning workflow:
//  1. Loads and validates the stack configuration
//  2. Initializes the Hetzner Cloud client using HCLOUD_TOKEN
//  3. Runs the validation, infrastructure, compute and ready phases
//  4. Writes outputs.json next to the config and, when state is
//     configured, publishes it to object storage
//
// Every phase converges on existing resources, so re-running apply after a
// failure or a config change is safe.
func Apply(ctx context.Context, configPath string, opts ApplyOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	secrets := loadSecrets()
	if err := secrets.RequireHCloud(); err != nil {
		return err
	}

	log.Printf("Applying stack: %s", cfg.Name)

	pCtx := newProvisioningContext(ctx, cfg, newInfraClient(secrets.HCloudToken), secrets)
	if err := provisioning.RunPhases(pCtx, newApplyPhases(opts)); err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	out := outputs.FromServer(cfg, pCtx.State.Server)
	if err := out.Validate(); err != nil {
		return fmt.Errorf("stack outputs are incomplete: %w", err)
	}

	if err := persistOutputs(ctx, cfg, secrets, out); err != nil {
		return err
	}

	printApplySuccess(cfg, out, pCtx.State.ServerCreated, opts.NoWait)
	return nil
}

func persistOutputs(ctx context.Context, cfg *config.Config, secrets config.Secrets, out outputs.Outputs) error {
	path := outputsPath(cfg)
	if err := outputs.WriteFile(path, out); err != nil {
		return err
	}
	log.Printf("Outputs written to %s", path)

	if !cfg.State.Enabled() {
		return nil
	}
	store, err := newOutputStore(cfg, secrets)
	if err != nil {
		return err
	}
	if err := store.Publish(ctx, out); err != nil {
		return err
	}
	log.Printf("Outputs published to %s", store.Location())
	return nil
}

func printApplySuccess(cfg *config.Config, out outputs.Outputs, created, noWait bool) {
	verb := "updated"
	if created {
		verb = "created"
	}
	fmt.Fprintf(stdout, "\nStack %s %s.\n\n", cfg.Name, verb)
	printOutputs(out)

	if noWait {
		fmt.Fprintln(stdout, "\nThe service may take a few minutes to come up while cloud-init pulls the image.")
	}
}
