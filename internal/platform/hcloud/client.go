package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ServerCreateOpts holds all parameters for creating a server.
type ServerCreateOpts struct {
	Name       string
	Image      string
	ServerType string
	Location   string
	SSHKeys    []string
	Labels     map[string]string
	UserData   string
}

// ServerProvisioner defines the interface for provisioning servers.
type ServerProvisioner interface {
	// CreateServer creates a server and waits until it is running.
	CreateServer(ctx context.Context, opts ServerCreateOpts) (*hcloud.Server, error)
	// GetServer returns the server by name, or nil if it does not exist.
	GetServer(ctx context.Context, name string) (*hcloud.Server, error)
	DeleteServer(ctx context.Context, name string) error
}

// SSHKeyManager defines the interface for managing SSH keys.
type SSHKeyManager interface {
	// EnsureSSHKey returns the key registered under name or with the same
	// fingerprint, creating it when neither exists.
	EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error)
	DeleteSSHKey(ctx context.Context, name string) error
}

// FirewallManager defines the interface for managing firewalls.
type FirewallManager interface {
	EnsureFirewall(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string, applyToLabelSelector string) (*hcloud.Firewall, error)
	DeleteFirewall(ctx context.Context, name string) error
	GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error)
}

// PricingProvider returns current Hetzner Cloud prices.
type PricingProvider interface {
	GetPricing(ctx context.Context) (hcloud.Pricing, error)
}

// InfrastructureManager combines all infrastructure interfaces.
type InfrastructureManager interface {
	ServerProvisioner
	SSHKeyManager
	FirewallManager
	PricingProvider

	// CleanupByLabel deletes every resource matching the label selector.
	CleanupByLabel(ctx context.Context, labelSelector map[string]string) error

	// GetPublicIP returns the public IPv4 of the machine running the CLI.
	GetPublicIP(ctx context.Context) (string, error)
}
