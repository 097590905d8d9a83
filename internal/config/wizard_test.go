package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResult_ToConfig(t *testing.T) {
	t.Parallel()
	r := &WizardResult{
		Name:           "Rates",
		Location:       "nbg1",
		ServerType:     "cx33",
		Registry:       "ghcr.io",
		Image:          "acme/rates",
		Tag:            "v2",
		GenerateSSHKey: true,
	}

	cfg := r.ToConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "rates", cfg.Name)
	assert.Equal(t, "nbg1", cfg.Location)
	assert.Equal(t, "ghcr.io/acme/rates:v2", cfg.Container.ImageRef())
	assert.True(t, cfg.SSH.Generate)
	assert.Equal(t, "rates_id_rsa", cfg.SSH.PrivateKeyPath)
}

func TestWizardValidators(t *testing.T) {
	t.Parallel()
	assert.Error(t, validateStackName(""))
	assert.Error(t, validateStackName("under_score"))
	assert.NoError(t, validateStackName("Rates-1"))

	assert.Error(t, validateImagePath(""))
	assert.Error(t, validateImagePath("acme/rates:v1"))
	assert.Error(t, validateImagePath("Acme/Rates"))
	assert.NoError(t, validateImagePath("acme/rates"))
}
