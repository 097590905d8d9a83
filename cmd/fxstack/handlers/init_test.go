package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/fxstack/internal/config"
)

func TestInit(t *testing.T) {
	out := saveAndRestoreFactories(t)
	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)

	isInteractive = func() bool { return true }
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{
			Name:           "Rates",
			Location:       "hel1",
			ServerType:     "cx33",
			Registry:       "ghcr.io",
			Image:          "acme/rates",
			Tag:            "v1",
			GenerateSSHKey: true,
		}, nil
	}

	require.NoError(t, Init(context.Background(), path))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rates", cfg.Name)
	assert.Equal(t, "hel1", cfg.Location)
	assert.Equal(t, "ghcr.io/acme/rates:v1", cfg.Container.ImageRef())

	assert.Contains(t, out.String(), "Configuration saved!")
	assert.Contains(t, out.String(), "generated on first apply")
	assert.NotContains(t, out.String(), "already exists")
}

func TestInit_WarnsOnOverwrite(t *testing.T) {
	out := saveAndRestoreFactories(t)

	isInteractive = func() bool { return true }
	fileExists = func(_ string) bool { return true }
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{Name: "rates", Image: "acme/rates"}, nil
	}
	saveConfig = func(_ *config.Config, _ string) error { return nil }

	require.NoError(t, Init(context.Background(), "fxstack.yaml"))
	assert.Contains(t, out.String(), "already exists")
}

func TestInit_NotATerminal(t *testing.T) {
	saveAndRestoreFactories(t)
	isInteractive = func() bool { return false }

	err := Init(context.Background(), "fxstack.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreFactories(t)
	isInteractive = func() bool { return true }
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		return nil, errors.New("user aborted")
	}

	err := Init(context.Background(), "fxstack.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}
