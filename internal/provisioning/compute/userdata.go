package compute

import (
	"github.com/imamik/fxstack/internal/cloudinit"
	"github.com/imamik/fxstack/internal/config"
)

// BootVars returns the cloud-init variables for cfg and the registry token.
func BootVars(cfg *config.Config, registryToken string) cloudinit.Vars {
	return cloudinit.Vars{
		ImagePath:     cfg.Container.Image,
		ImageTag:      cfg.Container.Tag,
		RegistryUser:  cfg.Container.RegistryUser,
		RegistryToken: registryToken,
	}
}

// BootOptions returns the container options for cfg.
func BootOptions(cfg *config.Config) cloudinit.Options {
	return cloudinit.Options{
		Registry:      cfg.Container.Registry,
		ContainerName: cfg.Container.Name,
		Env:           cfg.Container.Env,
	}
}

// RenderUserData renders the server's cloud-init document.
func RenderUserData(cfg *config.Config, registryToken string) (string, error) {
	return cloudinit.Render(BootVars(cfg, registryToken), BootOptions(cfg))
}
