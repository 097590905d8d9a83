// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/imamik/fxstack/internal/config"
	"github.com/imamik/fxstack/internal/outputs"
	"github.com/imamik/fxstack/internal/platform/hcloud"
	"github.com/imamik/fxstack/internal/provisioning"
)

// outputStore is the remote copy of a stack's outputs.
type outputStore interface {
	Location() string
	Publish(ctx context.Context, o outputs.Outputs) error
	Fetch(ctx context.Context) (outputs.Outputs, error)
	Remove(ctx context.Context) error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newInfraClient creates a new infrastructure client.
	newInfraClient = func(token string) hcloud.InfrastructureManager {
		return hcloud.NewRealClient(token)
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// newOutputStore opens the object storage copy of the outputs.
	newOutputStore = func(cfg *config.Config, secrets config.Secrets) (outputStore, error) {
		return outputs.NewS3Store(cfg, secrets)
	}

	// loadSecrets reads secrets from the environment.
	loadSecrets = config.LoadSecrets

	// findConfigFile finds fxstack.yaml in the working directory or a parent.
	findConfigFile = config.FindConfigFile

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// stdout receives command output.
	stdout io.Writer = os.Stdout
)

// loadConfig loads and validates the stack configuration.
// If configPath is empty, it looks for fxstack.yaml in the current directory
// and its parents.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'fxstack init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// outputsPath is where outputs.json lives for cfg.
func outputsPath(cfg *config.Config) string {
	return cfg.ResolvePath(outputs.DefaultFilename)
}

// readOutputs loads the local outputs file, falling back to the object
// store when state is configured.
func readOutputs(ctx context.Context, cfg *config.Config, secrets config.Secrets) (outputs.Outputs, error) {
	out, err := outputs.ReadFile(outputsPath(cfg))
	if err == nil || !errors.Is(err, outputs.ErrNoOutputs) || !cfg.State.Enabled() {
		return out, err
	}

	store, err := newOutputStore(cfg, secrets)
	if err != nil {
		return outputs.Outputs{}, err
	}
	log.Printf("No local %s, fetching %s", outputs.DefaultFilename, store.Location())
	return store.Fetch(ctx)
}
