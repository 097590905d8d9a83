package infrastructure

import (
	"fmt"
	"os"

	"github.com/imamik/fxstack/internal/provisioning"
	"github.com/imamik/fxstack/internal/util/keygen"
	"github.com/imamik/fxstack/internal/util/labels"
	"github.com/imamik/fxstack/internal/util/naming"
)

// ProvisionSSHKey registers the stack's public key, generating a key pair
// first when ssh.generate is set and no key exists yet.
func (p *Provisioner) ProvisionSSHKey(ctx *provisioning.Context) error {
	publicKey, err := loadPublicKey(ctx)
	if err != nil {
		return err
	}

	name := naming.SSHKey(ctx.Config.Name)
	keyLabels := labels.NewLabelBuilder(ctx.Config.Name).
		WithRole(labels.RoleSSHKey).
		Merge(ctx.Config.Labels).
		Build()

	key, err := ctx.Infra.EnsureSSHKey(ctx, name, keygen.Normalize(publicKey), keyLabels)
	if err != nil {
		return fmt.Errorf("failed to ensure ssh key: %w", err)
	}

	ctx.State.SSHKey = key
	ctx.State.PublicKey = keygen.Normalize(publicKey)
	provisioning.LogResourceCreated(ctx.Observer, phase, "ssh key", key.Name, key.ID)
	return nil
}

func loadPublicKey(ctx *provisioning.Context) ([]byte, error) {
	cfg := ctx.Config

	if cfg.SSH.Generate && cfg.SSH.PublicKeyPath == "" {
		kp, generated, err := keygen.LoadOrGenerate(cfg.PrivateKeyPath(), keygen.DefaultBits)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare generated ssh key: %w", err)
		}
		ctx.State.GeneratedKey = generated
		if generated {
			ctx.Observer.Printf("[%s] Generated SSH key pair at %s", phase, cfg.PrivateKeyPath())
		}
		return kp.PublicKey, nil
	}

	path := cfg.PublicKeyPath()
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key %s: %w", path, err)
	}
	return data, nil
}
