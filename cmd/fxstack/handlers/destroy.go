package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/fxstack/internal/config"
	"github.com/imamik/fxstack/internal/outputs"
	"github.com/imamik/fxstack/internal/provisioning"
	"github.com/imamik/fxstack/internal/provisioning/destroy"
)

// newDestroyPhase creates the destroy phase.
var newDestroyPhase = func() provisioning.Phase {
	return destroy.NewProvisioner()
}

// Destroy deletes the stack's server, firewall and SSH key, then removes
// its outputs locally and from object storage.
//
// Missing resources are not an error, so destroy can be re-run after a
// partial failure. A failure to remove the remote outputs copy is logged
// but does not fail the command.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	secrets := loadSecrets()
	if err := secrets.RequireHCloud(); err != nil {
		return err
	}

	log.Printf("Destroying stack: %s", cfg.Name)

	pCtx := newProvisioningContext(ctx, cfg, newInfraClient(secrets.HCloudToken), secrets)
	if err := provisioning.RunPhases(pCtx, []provisioning.Phase{newDestroyPhase()}); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	if err := outputs.RemoveFile(outputsPath(cfg)); err != nil {
		return err
	}

	if cfg.State.Enabled() {
		if err := removeRemoteOutputs(ctx, cfg, secrets); err != nil {
			log.Printf("Warning: failed to remove published outputs: %v", err)
		}
	}

	log.Printf("Stack %s destroyed successfully", cfg.Name)
	return nil
}

func removeRemoteOutputs(ctx context.Context, cfg *config.Config, secrets config.Secrets) error {
	store, err := newOutputStore(cfg, secrets)
	if err != nil {
		return err
	}
	return store.Remove(ctx)
}
