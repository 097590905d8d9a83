package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearServiceEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		EnvPort, EnvRatesURL, EnvRatesAPIKey, EnvRatesTTL, EnvLogLevel,
		EnvEnvironment, EnvRateLimitRPS, EnvRateLimitBurst, EnvTrustedProxies,
	} {
		t.Setenv(env, "")
	}
}

func TestLoadServiceConfig_Defaults(t *testing.T) {
	clearServiceEnv(t)

	cfg, err := LoadServiceConfig()
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, ":80", cfg.Addr())
	assert.Empty(t, cfg.RatesURL)
	assert.Empty(t, cfg.RatesAPIKey)
	assert.Equal(t, 60*time.Second, cfg.RatesTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Second, cfg.ShutdownDrain)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadServiceConfig_FromEnv(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvRatesURL, "http://rates.local/v6/")
	t.Setenv(EnvRatesAPIKey, " abc123 ")
	t.Setenv(EnvRatesTTL, "2m")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvEnvironment, "development")
	t.Setenv(EnvRateLimitRPS, "0")
	t.Setenv(EnvRateLimitBurst, "5")

	cfg, err := LoadServiceConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "http://rates.local/v6", cfg.RatesURL)
	assert.Equal(t, "abc123", cfg.RatesAPIKey)
	assert.Equal(t, 2*time.Minute, cfg.RatesTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, 5, cfg.RateLimitBurst)
}

func TestLoadServiceConfig_Invalid(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv(EnvPort, "http")
	t.Setenv(EnvRatesTTL, "-1s")
	t.Setenv(EnvRateLimitRPS, "fast")
	t.Setenv(EnvRateLimitBurst, "0")
	t.Setenv(EnvEnvironment, "staging")

	_, err := LoadServiceConfig()
	require.Error(t, err)
	for _, want := range []string{EnvPort, EnvRatesTTL, EnvRateLimitRPS, EnvRateLimitBurst, EnvEnvironment} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadServiceConfig_TrustedProxies(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv(EnvTrustedProxies, " 10.0.0.0/8, 192.0.2.1 ,,")

	cfg, err := LoadServiceConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.TrustedProxies)
}

func TestLoadServiceConfig_InvalidTrustedProxy(t *testing.T) {
	clearServiceEnv(t)
	t.Setenv(EnvTrustedProxies, "10.0.0.0/8,loadbalancer")

	_, err := LoadServiceConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTrustedProxies)
	assert.Contains(t, err.Error(), "loadbalancer")
}
