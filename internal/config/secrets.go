package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Secrets are read from the environment, never from fxstack.yaml.
type Secrets struct {
	HCloudToken   string
	RegistryToken string
	S3AccessKey   string
	S3SecretKey   string
}

// LoadSecrets reads all secret environment variables. Surrounding
// whitespace is trimmed.
func LoadSecrets() Secrets {
	return Secrets{
		HCloudToken:   strings.TrimSpace(os.Getenv(EnvHCloudToken)),
		RegistryToken: strings.TrimSpace(os.Getenv(EnvRegistryToken)),
		S3AccessKey:   strings.TrimSpace(os.Getenv(EnvS3AccessKey)),
		S3SecretKey:   strings.TrimSpace(os.Getenv(EnvS3SecretKey)),
	}
}

// RequireHCloud returns an error naming the variable when the Hetzner
// token is missing.
func (s Secrets) RequireHCloud() error {
	if s.HCloudToken == "" {
		return fmt.Errorf("%s environment variable is required", EnvHCloudToken)
	}
	return nil
}

// RequireRegistry returns an error when the registry token is missing.
func (s Secrets) RequireRegistry() error {
	if s.RegistryToken == "" {
		return fmt.Errorf("%s environment variable is required", EnvRegistryToken)
	}
	return nil
}

// RequireState checks the object storage keys when state is enabled.
func (s Secrets) RequireState(state StateConfig) error {
	if !state.Enabled() {
		return nil
	}
	var errs []error
	if s.S3AccessKey == "" {
		errs = append(errs, fmt.Errorf("%s environment variable is required when state.bucket is set", EnvS3AccessKey))
	}
	if s.S3SecretKey == "" {
		errs = append(errs, fmt.Errorf("%s environment variable is required when state.bucket is set", EnvS3SecretKey))
	}
	return errors.Join(errs...)
}
