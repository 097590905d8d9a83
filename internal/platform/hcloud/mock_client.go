package hcloud

import (
	"context"
	"net"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// MockClient is a mock implementation of InfrastructureManager for testing.
// Unset function fields fall back to successful defaults.
type MockClient struct {
	// Server
	CreateServerFunc func(ctx context.Context, opts ServerCreateOpts) (*hcloud.Server, error)
	GetServerFunc    func(ctx context.Context, name string) (*hcloud.Server, error)
	DeleteServerFunc func(ctx context.Context, name string) error

	// SSH key
	EnsureSSHKeyFunc func(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error)
	DeleteSSHKeyFunc func(ctx context.Context, name string) error

	// Firewall
	EnsureFirewallFunc func(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string, applyToLabelSelector string) (*hcloud.Firewall, error)
	DeleteFirewallFunc func(ctx context.Context, name string) error
	GetFirewallFunc    func(ctx context.Context, name string) (*hcloud.Firewall, error)

	GetPricingFunc     func(ctx context.Context) (hcloud.Pricing, error)
	CleanupByLabelFunc func(ctx context.Context, labelSelector map[string]string) error
	GetPublicIPFunc    func(ctx context.Context) (string, error)
}

// Ensure interface compliance
var _ InfrastructureManager = (*MockClient)(nil)

// MockServerIPv4 is the address of the server CreateServer returns by default.
const MockServerIPv4 = "203.0.113.10"

// NewMockServer builds a running server with a public IPv4.
func NewMockServer(id int64, name, ipv4 string) *hcloud.Server {
	return &hcloud.Server{
		ID:     id,
		Name:   name,
		Status: hcloud.ServerStatusRunning,
		PublicNet: hcloud.ServerPublicNet{
			IPv4: hcloud.ServerPublicNetIPv4{IP: net.ParseIP(ipv4)},
		},
	}
}

// CreateServer mocks server creation.
func (m *MockClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (*hcloud.Server, error) {
	if m.CreateServerFunc != nil {
		return m.CreateServerFunc(ctx, opts)
	}
	return NewMockServer(42, opts.Name, MockServerIPv4), nil
}

// GetServer mocks server lookup. The default is "not found".
func (m *MockClient) GetServer(ctx context.Context, name string) (*hcloud.Server, error) {
	if m.GetServerFunc != nil {
		return m.GetServerFunc(ctx, name)
	}
	return nil, nil
}

// DeleteServer mocks server deletion.
func (m *MockClient) DeleteServer(ctx context.Context, name string) error {
	if m.DeleteServerFunc != nil {
		return m.DeleteServerFunc(ctx, name)
	}
	return nil
}

// EnsureSSHKey mocks ssh key registration.
func (m *MockClient) EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error) {
	if m.EnsureSSHKeyFunc != nil {
		return m.EnsureSSHKeyFunc(ctx, name, publicKey, labels)
	}
	return &hcloud.SSHKey{ID: 7, Name: name, PublicKey: publicKey, Labels: labels}, nil
}

// DeleteSSHKey mocks ssh key deletion.
func (m *MockClient) DeleteSSHKey(ctx context.Context, name string) error {
	if m.DeleteSSHKeyFunc != nil {
		return m.DeleteSSHKeyFunc(ctx, name)
	}
	return nil
}

// EnsureFirewall mocks firewall creation.
func (m *MockClient) EnsureFirewall(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string, applyToLabelSelector string) (*hcloud.Firewall, error) {
	if m.EnsureFirewallFunc != nil {
		return m.EnsureFirewallFunc(ctx, name, rules, labels, applyToLabelSelector)
	}
	return &hcloud.Firewall{ID: 9, Name: name, Rules: rules, Labels: labels}, nil
}

// DeleteFirewall mocks firewall deletion.
func (m *MockClient) DeleteFirewall(ctx context.Context, name string) error {
	if m.DeleteFirewallFunc != nil {
		return m.DeleteFirewallFunc(ctx, name)
	}
	return nil
}

// GetFirewall mocks getting firewall.
func (m *MockClient) GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error) {
	if m.GetFirewallFunc != nil {
		return m.GetFirewallFunc(ctx, name)
	}
	return nil, nil
}

// GetPricing mocks the price list. The default is empty.
func (m *MockClient) GetPricing(ctx context.Context) (hcloud.Pricing, error) {
	if m.GetPricingFunc != nil {
		return m.GetPricingFunc(ctx)
	}
	return hcloud.Pricing{}, nil
}

// CleanupByLabel mocks label-based cleanup.
func (m *MockClient) CleanupByLabel(ctx context.Context, labelSelector map[string]string) error {
	if m.CleanupByLabelFunc != nil {
		return m.CleanupByLabelFunc(ctx, labelSelector)
	}
	return nil
}

// GetPublicIP mocks public IP detection.
func (m *MockClient) GetPublicIP(ctx context.Context) (string, error) {
	if m.GetPublicIPFunc != nil {
		return m.GetPublicIPFunc(ctx)
	}
	return "198.51.100.7", nil
}
