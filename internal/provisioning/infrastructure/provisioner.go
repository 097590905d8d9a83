package infrastructure

import (
	"fmt"

	"github.com/imamik/fxstack/internal/provisioning"
)

const phase = "infrastructure"

// Provisioner handles infrastructure provisioning (SSH key, firewall).
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.Config.Firewall.UseCurrentIPv4 && ctx.State.PublicIP == "" {
		ip, err := ctx.Infra.GetPublicIP(ctx)
		if err != nil {
			return fmt.Errorf("failed to detect current public IPv4: %w", err)
		}
		ctx.State.PublicIP = ip
		ctx.Observer.Printf("[%s] Restricting SSH to current IPv4 %s", phase, ip)
	}

	if err := p.ProvisionSSHKey(ctx); err != nil {
		return err
	}
	return p.ProvisionFirewall(ctx)
}
