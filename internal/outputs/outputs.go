package outputs

import (
	"errors"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/kballard/go-shellquote"

	"github.com/imamik/fxstack/internal/config"
	hcloud_internal "github.com/imamik/fxstack/internal/platform/hcloud"
)

// Outputs are the values exported by a provisioned stack.
type Outputs struct {
	InstanceID string `json:"instance_id"`
	PublicIPv4 string `json:"public_ipv4"`
	SSHCommand string `json:"ssh_command"`
	HTTPURL    string `json:"http_url"`
}

// FromServer derives the outputs for server. The SSH command passes -i only
// when a non-default private key is configured.
func FromServer(cfg *config.Config, server *hcloud.Server) Outputs {
	if server == nil {
		return Outputs{}
	}

	ip := hcloud_internal.ServerIPv4(server)
	out := Outputs{InstanceID: strconv.FormatInt(server.ID, 10), PublicIPv4: ip}
	if ip == "" {
		return out
	}

	args := []string{"ssh"}
	if cfg.SSH.PrivateKeyPath != "" && cfg.SSH.PrivateKeyPath != config.DefaultPrivateKey {
		args = append(args, "-i", cfg.PrivateKeyPath())
	}
	args = append(args, cfg.SSH.User+"@"+ip)

	out.SSHCommand = shellquote.Join(args...)
	out.HTTPURL = "http://" + ip
	return out
}

// Validate requires every output to be set.
func (o Outputs) Validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"instance_id", o.InstanceID},
		{"public_ipv4", o.PublicIPv4},
		{"ssh_command", o.SSHCommand},
		{"http_url", o.HTTPURL},
	} {
		if f.value == "" {
			errs = append(errs, errors.New(f.name+" is empty"))
		}
	}
	return errors.Join(errs...)
}

// Map returns the outputs keyed by their JSON names.
func (o Outputs) Map() map[string]string {
	return map[string]string{
		"instance_id": o.InstanceID,
		"public_ipv4": o.PublicIPv4,
		"ssh_command": o.SSHCommand,
		"http_url":    o.HTTPURL,
	}
}

// Keys lists the output names in display order.
var Keys = []string{"instance_id", "public_ipv4", "ssh_command", "http_url"}
