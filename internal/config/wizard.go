package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Name           string
	Location       string
	ServerType     string
	Registry       string
	Image          string
	Tag            string
	GenerateSSHKey bool
}

// RunWizard asks for the handful of values a stack needs.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Location:       DefaultLocation,
		ServerType:     DefaultServerType,
		Registry:       DefaultRegistry,
		Tag:            DefaultTag,
		GenerateSSHKey: true,
	}

	locationOptions := make([]huh.Option[string], 0, len(ValidLocations))
	for _, code := range LocationNames() {
		locationOptions = append(locationOptions, huh.NewOption(fmt.Sprintf("%s (%s)", ValidLocations[code], code), code))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stack name").
				Description("Used to name the server, firewall and SSH key").
				Placeholder("rates").
				Value(&result.Name).
				Validate(validateStackName),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Location").
				Options(locationOptions...).
				Value(&result.Location),

			huh.NewSelect[string]().
				Title("Server type").
				Description("Shared vCPU instances").
				Options(
					huh.NewOption("CX23 - 2 vCPU, 4GB RAM", "cx23"),
					huh.NewOption("CX33 - 4 vCPU, 8GB RAM", "cx33"),
					huh.NewOption("CX43 - 8 vCPU, 16GB RAM", "cx43"),
				).
				Value(&result.ServerType),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Container registry").
				Value(&result.Registry),
			huh.NewInput().
				Title("Image path").
				Description("Repository path without tag, e.g. acme/rates").
				Value(&result.Image).
				Validate(validateImagePath),
			huh.NewInput().
				Title("Image tag").
				Value(&result.Tag),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate a dedicated SSH key?").
				Description("No: use ~/.ssh/id_rsa.pub").
				Value(&result.GenerateSSHKey),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config with defaults applied.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Name:       strings.ToLower(r.Name),
		Location:   r.Location,
		ServerType: r.ServerType,
		SSH: SSHConfig{
			Generate: r.GenerateSSHKey,
		},
		Container: ContainerConfig{
			Registry: r.Registry,
			Image:    r.Image,
			Tag:      r.Tag,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func validateStackName(s string) error {
	if s == "" {
		return errors.New("stack name is required")
	}
	if !isValidDNSName(strings.ToLower(s)) {
		return errors.New("stack name can only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}

func validateImagePath(s string) error {
	if s == "" {
		return errors.New("image path is required")
	}
	if strings.Contains(s, ":") {
		return errors.New("leave the tag out of the image path")
	}
	if !imagePathRegex.MatchString(s) {
		return errors.New("image path must be lowercase, e.g. acme/rates")
	}
	return nil
}
