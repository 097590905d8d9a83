package hcloud

import (
	"context"
	"fmt"

	"github.com/imamik/fxstack/internal/util/keygen"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureSSHKey registers publicKey under name. A key already uploaded
// under another name is reused, since Hetzner rejects duplicates.
func (c *RealClient) EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error) {
	fingerprint, err := keygen.Fingerprint([]byte(publicKey))
	if err != nil {
		return nil, fmt.Errorf("invalid public key for ssh key %s: %w", name, err)
	}

	return (&EnsureOperation[*hcloud.SSHKey, hcloud.SSHKeyCreateOpts, any]{
		Name:         name,
		ResourceType: "ssh key",
		Get: func(ctx context.Context, name string) (*hcloud.SSHKey, *hcloud.Response, error) {
			key, resp, err := c.client.SSHKey.Get(ctx, name)
			if err != nil || key != nil {
				return key, resp, err
			}
			return c.client.SSHKey.GetByFingerprint(ctx, fingerprint)
		},
		Validate: func(key *hcloud.SSHKey) error {
			if key.Fingerprint != fingerprint {
				return fmt.Errorf("ssh key %s exists with fingerprint %s, expected %s", key.Name, key.Fingerprint, fingerprint)
			}
			return nil
		},
		Create: simpleCreate(c.client.SSHKey.Create),
		CreateOptsMapper: func() hcloud.SSHKeyCreateOpts {
			return hcloud.SSHKeyCreateOpts{
				Name:      name,
				PublicKey: publicKey,
				Labels:    labels,
			}
		},
	}).Execute(ctx, c)
}

// DeleteSSHKey deletes the SSH key with the given name.
func (c *RealClient) DeleteSSHKey(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.SSHKey]{
		Name:         name,
		ResourceType: "ssh key",
		Get:          c.client.SSHKey.Get,
		Delete:       c.client.SSHKey.Delete,
	}).Execute(ctx, c)
}

