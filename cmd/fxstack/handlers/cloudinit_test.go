package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/fxstack/internal/cloudinit"
	"github.com/imamik/fxstack/internal/config"
)

func TestCloudInit_Redacted(t *testing.T) {
	out := saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML)
	loadSecrets = withSecrets(config.Secrets{RegistryToken: "ghp_secret"})

	require.NoError(t, CloudInit(path, false))

	doc := out.String()
	assert.Contains(t, doc, cloudinit.Header)
	assert.Contains(t, doc, "ghcr.io/acme/rates:v1.2.0")
	assert.Contains(t, doc, cloudinit.RedactedToken)
	assert.NotContains(t, doc, "ghp_secret")
}

func TestCloudInit_ShowSecrets(t *testing.T) {
	out := saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML)
	loadSecrets = withSecrets(config.Secrets{RegistryToken: "ghp_secret"})

	require.NoError(t, CloudInit(path, true))
	assert.Contains(t, out.String(), "ghp_secret")
	assert.NotContains(t, out.String(), cloudinit.RedactedToken)
}

func TestCloudInit_ShowSecretsNeedsToken(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML)
	loadSecrets = withSecrets(config.Secrets{})

	err := CloudInit(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvRegistryToken)
}
