package provisioning

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/imamik/fxstack/internal/config"
)

// ValidationError represents a pre-flight error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase checks the environment before any resource is touched.
// Config.Validate covers the file itself; this phase covers secrets and
// files the config points at.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	var errs []error
	for _, ve := range Preflight(ctx.Config, ctx.Secrets) {
		if ve.IsError() {
			errs = append(errs, ve)
			continue
		}
		ctx.Observer.Event(Event{
			Type:    EventValidationWarning,
			Phase:   vp.Name(),
			Message: ve.Message,
			Fields:  map[string]string{"field": ve.Field},
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("pre-flight validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Preflight returns every pre-flight error and warning for cfg.
func Preflight(cfg *config.Config, secrets config.Secrets) []ValidationError {
	var errs []ValidationError

	if secrets.RegistryToken == "" {
		errs = append(errs, ValidationError{
			Field:    config.EnvRegistryToken,
			Message:  "registry token is required to pull the container image",
			Severity: "error",
		})
	}

	if err := secrets.RequireState(cfg.State); err != nil {
		errs = append(errs, ValidationError{Field: "state", Message: err.Error(), Severity: "error"})
	}

	if !cfg.SSH.Generate {
		pub := cfg.PublicKeyPath()
		if _, err := os.Stat(pub); err != nil {
			errs = append(errs, ValidationError{
				Field:    "ssh.public_key_path",
				Message:  fmt.Sprintf("public key %s is not readable (set ssh.generate to create one)", pub),
				Severity: "error",
			})
		}
	}

	if opensToWorld(cfg.Firewall.SSHSources) {
		errs = append(errs, ValidationError{
			Field:    "firewall.ssh_sources",
			Message:  "SSH is reachable from any address, consider use_current_ipv4",
			Severity: "warning",
		})
	}

	if cfg.Container.Tag == config.DefaultTag {
		errs = append(errs, ValidationError{
			Field:    "container.tag",
			Message:  "tag latest is mutable, re-running apply will not roll out a new image",
			Severity: "warning",
		})
	}

	if strings.Contains(cfg.Container.Registry, "docker.io") && cfg.Container.RegistryUser == config.DefaultRegistryUser {
		errs = append(errs, ValidationError{
			Field:    "container.registry_user",
			Message:  "Docker Hub expects your account name as registry_user",
			Severity: "warning",
		})
	}

	return errs
}

func opensToWorld(sources []string) bool {
	return slices.Contains(sources, config.AnyIPv4) || slices.Contains(sources, config.AnyIPv6)
}
