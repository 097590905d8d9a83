package provisioning

import "github.com/hetznercloud/hcloud-go/v2/hcloud"

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes.
type State struct {
	// Infrastructure results
	PublicIP     string // IPv4 of the machine running apply, when detected
	SSHKey       *hcloud.SSHKey
	PublicKey    string
	GeneratedKey bool
	Firewall     *hcloud.Firewall

	// Compute results
	Server        *hcloud.Server
	ServerCreated bool   // false when an existing server was reused
	UserData      string // rendered cloud-init, contains the registry token

	// Ready results
	Healthy bool
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
