package handlers

import (
	"fmt"

	"github.com/imamik/fxstack/internal/cloudinit"
	"github.com/imamik/fxstack/internal/provisioning/compute"
)

// CloudInit prints the user-data the server boots with. The registry token
// is masked unless showSecrets is set, in which case REGISTRY_TOKEN must be
// present.
func CloudInit(configPath string, showSecrets bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	vars := compute.BootVars(cfg, "")
	opts := compute.BootOptions(cfg)

	var doc string
	if showSecrets {
		secrets := loadSecrets()
		if err := secrets.RequireRegistry(); err != nil {
			return err
		}
		vars.RegistryToken = secrets.RegistryToken
		doc, err = cloudinit.Render(vars, opts)
	} else {
		doc, err = cloudinit.RenderRedacted(vars, opts)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, doc)
	return nil
}
