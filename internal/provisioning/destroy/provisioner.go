package destroy

import (
	"fmt"

	"github.com/imamik/fxstack/internal/provisioning"
	"github.com/imamik/fxstack/internal/util/labels"
	"github.com/imamik/fxstack/internal/util/naming"
)

const phase = "destroy"

// Provisioner handles stack destruction.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision deletes the server, firewall and SSH key, then removes anything
// else carrying the stack label. Missing resources are not an error.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	stack := ctx.Config.Name
	ctx.Observer.Printf("[%s] Starting destruction of stack: %s", phase, stack)

	steps := []struct {
		kind string
		name string
		del  func(string) error
	}{
		{"server", naming.Server(stack), func(n string) error { return ctx.Infra.DeleteServer(ctx, n) }},
		{"firewall", naming.Firewall(stack), func(n string) error { return ctx.Infra.DeleteFirewall(ctx, n) }},
		{"ssh key", naming.SSHKey(stack), func(n string) error { return ctx.Infra.DeleteSSHKey(ctx, n) }},
	}

	for _, s := range steps {
		provisioning.LogResourceDeleting(ctx.Observer, phase, s.kind, s.name)
		if err := s.del(s.name); err != nil {
			return fmt.Errorf("failed to delete %s %s: %w", s.kind, s.name, err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, phase, s.kind, s.name)
	}

	// Only the stack label: resources renamed by hand are still swept.
	if err := ctx.Infra.CleanupByLabel(ctx, labels.ForStack(stack)); err != nil {
		return fmt.Errorf("failed to cleanup stack resources: %w", err)
	}

	ctx.Observer.Printf("[%s] Stack %s destroyed successfully", phase, stack)
	return nil
}
