package compute

import (
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	hcloud_internal "github.com/imamik/fxstack/internal/platform/hcloud"
	"github.com/imamik/fxstack/internal/provisioning"
	"github.com/imamik/fxstack/internal/util/labels"
	"github.com/imamik/fxstack/internal/util/naming"
)

const phase = "compute"

// Provisioner handles server provisioning.
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	userData, err := RenderUserData(ctx.Config, ctx.Secrets.RegistryToken)
	if err != nil {
		return fmt.Errorf("failed to render cloud-init: %w", err)
	}
	ctx.State.UserData = userData

	name := naming.Server(ctx.Config.Name)
	existing, err := ctx.Infra.GetServer(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up server %s: %w", name, err)
	}
	if existing != nil {
		return p.reuse(ctx, existing)
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, "server", name)
	ctx.Observer.Printf("[%s] Booting %s on %s in %s with image %s", phase,
		ctx.Config.ServerType, ctx.Config.Image, ctx.Config.Location, ctx.Config.Container.ImageRef())

	server, err := ctx.Infra.CreateServer(ctx, hcloud_internal.ServerCreateOpts{
		Name:       name,
		Image:      ctx.Config.Image,
		ServerType: ctx.Config.ServerType,
		Location:   ctx.Config.Location,
		SSHKeys:    []string{sshKeyName(ctx)},
		Labels:     serverLabels(ctx),
		UserData:   userData,
	})
	if err != nil {
		return fmt.Errorf("failed to create server %s: %w", name, err)
	}

	ctx.State.Server = server
	ctx.State.ServerCreated = true
	provisioning.LogResourceCreated(ctx.Observer, phase, "server", server.Name, server.ID)
	return nil
}

func (p *Provisioner) reuse(ctx *provisioning.Context, server *hcloud.Server) error {
	if server.Labels[labels.KeyStack] != ctx.Config.Name {
		return fmt.Errorf("server %s exists but is not labelled %s, refusing to adopt it",
			server.Name, labels.SelectorForStack(ctx.Config.Name))
	}

	ctx.State.Server = server
	ctx.State.ServerCreated = false
	provisioning.LogResourceExists(ctx.Observer, phase, "server", server.Name, server.ID)
	if server.Status != hcloud.ServerStatusRunning {
		ctx.Observer.Printf("[%s] Server %s is %s, not running", phase, server.Name, server.Status)
	}
	return nil
}

func sshKeyName(ctx *provisioning.Context) string {
	if ctx.State.SSHKey != nil {
		return ctx.State.SSHKey.Name
	}
	return naming.SSHKey(ctx.Config.Name)
}

// serverLabels carry the stack label the firewall selector matches.
func serverLabels(ctx *provisioning.Context) map[string]string {
	return labels.NewLabelBuilder(ctx.Config.Name).
		WithRole(labels.RoleApp).
		Merge(ctx.Config.Labels).
		Build()
}
