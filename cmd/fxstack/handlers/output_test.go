package handlers

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/fxstack/internal/config"
	"github.com/imamik/fxstack/internal/outputs"
)

func writeOutputs(t *testing.T, configPath string) {
	t.Helper()
	require.NoError(t, outputs.WriteFile(filepath.Join(filepath.Dir(configPath), outputs.DefaultFilename), sampleOutputs()))
}

func TestOutput_All(t *testing.T) {
	out := saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML)
	writeOutputs(t, path)

	require.NoError(t, Output(context.Background(), path, "", false))
	for _, key := range outputs.Keys {
		assert.Contains(t, out.String(), key)
	}
	assert.Contains(t, out.String(), "ssh root@203.0.113.10")
}

func TestOutput_Single(t *testing.T) {
	out := saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML)
	writeOutputs(t, path)

	require.NoError(t, Output(context.Background(), path, "http_url", false))
	assert.Equal(t, "http://203.0.113.10\n", out.String())
}

func TestOutput_JSON(t *testing.T) {
	out := saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML)
	writeOutputs(t, path)

	require.NoError(t, Output(context.Background(), path, "", true))

	var got outputs.Outputs
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, sampleOutputs(), got)
}

func TestOutput_UnknownName(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML)
	writeOutputs(t, path)

	err := Output(context.Background(), path, "password", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output")
}

func TestOutput_NotApplied(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML)

	err := Output(context.Background(), path, "", false)
	require.ErrorIs(t, err, outputs.ErrNoOutputs)
}

func TestOutput_FallsBackToStore(t *testing.T) {
	out := saveAndRestoreFactories(t)
	path := writeStackConfig(t, testConfigYAML+`
state:
  endpoint: https://fsn1.your-objectstorage.com
  bucket: stacks
`)

	stored := sampleOutputs()
	newOutputStore = func(_ *config.Config, _ config.Secrets) (outputStore, error) {
		return &memoryStore{outputs: &stored}, nil
	}

	require.NoError(t, Output(context.Background(), path, "instance_id", false))
	assert.Equal(t, "42\n", out.String())
}
