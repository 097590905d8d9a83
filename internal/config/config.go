package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables holding secrets.
const (
	EnvHCloudToken   = "HCLOUD_TOKEN"
	EnvRegistryToken = "REGISTRY_TOKEN"
	EnvS3AccessKey   = "FXSTACK_S3_ACCESS_KEY"
	EnvS3SecretKey   = "FXSTACK_S3_SECRET_KEY"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultLocation      = "fsn1"
	DefaultServerType    = "cx23"
	DefaultImage         = "ubuntu-24.04"
	DefaultSSHUser       = "root"
	DefaultRegistry      = "ghcr.io"
	DefaultTag           = "latest"
	DefaultRegistryUser  = "token"
	DefaultContainerName = "app"
	DefaultPrivateKey    = "~/.ssh/id_rsa"
)

// Well-known ports opened on the instance.
const (
	PortSSH   = 22
	PortHTTP  = 80
	PortHTTPS = 443
)

// AnyIPv4 and AnyIPv6 are the default firewall sources.
const (
	AnyIPv4 = "0.0.0.0/0"
	AnyIPv6 = "::/0"
)

// Config is the desired state of a single-instance stack.
type Config struct {
	// Name prefixes every resource and must be DNS-safe.
	Name string `yaml:"name"`

	// Location is the Hetzner datacenter location.
	Location string `yaml:"location,omitempty"`

	// ServerType is the Hetzner server type (e.g. cx23).
	ServerType string `yaml:"server_type,omitempty"`

	// Image is the OS image the instance boots.
	Image string `yaml:"image,omitempty"`

	SSH       SSHConfig         `yaml:"ssh,omitempty"`
	Container ContainerConfig   `yaml:"container"`
	Firewall  FirewallConfig    `yaml:"firewall,omitempty"`
	Labels    map[string]string `yaml:"labels,omitempty"`
	State     StateConfig       `yaml:"state,omitempty"`

	// dir is the directory the config file was loaded from. Relative key
	// paths resolve against it.
	dir string
}

// SSHConfig selects the key installed on the instance.
type SSHConfig struct {
	PublicKeyPath  string `yaml:"public_key_path,omitempty"`
	PrivateKeyPath string `yaml:"private_key_path,omitempty"`
	User           string `yaml:"user,omitempty"`

	// Generate creates a dedicated key pair next to the config file when
	// no public key path is set.
	Generate bool `yaml:"generate,omitempty"`
}

// ContainerConfig describes the image cloud-init runs on boot.
type ContainerConfig struct {
	Registry     string            `yaml:"registry,omitempty"`
	Image        string            `yaml:"image"`
	Tag          string            `yaml:"tag,omitempty"`
	RegistryUser string            `yaml:"registry_user,omitempty"`
	Name         string            `yaml:"name,omitempty"`
	Env          map[string]string `yaml:"env,omitempty"`
}

// FirewallConfig controls who may reach the instance.
type FirewallConfig struct {
	SSHSources  []string `yaml:"ssh_sources,omitempty"`
	HTTPSources []string `yaml:"http_sources,omitempty"`

	// UseCurrentIPv4 restricts SSH to the public IPv4 of the machine
	// running apply, in addition to SSHSources.
	UseCurrentIPv4 bool `yaml:"use_current_ipv4,omitempty"`

	ExtraRules []FirewallRule `yaml:"extra_rules,omitempty"`
}

// FirewallRule is an additional user-defined rule.
type FirewallRule struct {
	Description    string   `yaml:"description,omitempty"`
	Direction      string   `yaml:"direction"`
	Protocol       string   `yaml:"protocol"`
	Port           string   `yaml:"port,omitempty"`
	SourceIPs      []string `yaml:"source_ips,omitempty"`
	DestinationIPs []string `yaml:"destination_ips,omitempty"`
}

// StateConfig points at an S3-compatible bucket that receives outputs.
type StateConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`

	// PathStyle addresses the bucket as endpoint/bucket (MinIO and friends).
	PathStyle bool `yaml:"path_style,omitempty"`
}

// Enabled reports whether an outputs bucket is configured.
func (s StateConfig) Enabled() bool {
	return s.Bucket != ""
}

// ApplyDefaults fills unset fields with opinionated defaults.
func (c *Config) ApplyDefaults() {
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.ServerType == "" {
		c.ServerType = DefaultServerType
	}
	if c.Image == "" {
		c.Image = DefaultImage
	}
	if c.SSH.User == "" {
		c.SSH.User = DefaultSSHUser
	}
	if c.SSH.PrivateKeyPath == "" {
		if c.SSH.Generate && c.SSH.PublicKeyPath == "" {
			c.SSH.PrivateKeyPath = c.Name + "_id_rsa"
		} else {
			c.SSH.PrivateKeyPath = DefaultPrivateKey
		}
	}
	if c.Container.Registry == "" {
		c.Container.Registry = DefaultRegistry
	}
	if c.Container.Tag == "" {
		c.Container.Tag = DefaultTag
	}
	if c.Container.RegistryUser == "" {
		c.Container.RegistryUser = DefaultRegistryUser
	}
	if c.Container.Name == "" {
		c.Container.Name = DefaultContainerName
	}
	if len(c.Firewall.SSHSources) == 0 && !c.Firewall.UseCurrentIPv4 {
		c.Firewall.SSHSources = []string{AnyIPv4, AnyIPv6}
	}
	if len(c.Firewall.HTTPSources) == 0 {
		c.Firewall.HTTPSources = []string{AnyIPv4, AnyIPv6}
	}
	if c.State.Enabled() && c.State.Region == "" {
		c.State.Region = c.Location
	}
}

// SetDir records the directory relative paths resolve against.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ResolvePath expands ~ and resolves p against the config directory.
func (c *Config) ResolvePath(p string) string {
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// PublicKeyPath returns the resolved public key path. It falls back to
// the private key path with a .pub suffix.
func (c *Config) PublicKeyPath() string {
	if c.SSH.PublicKeyPath != "" {
		return c.ResolvePath(c.SSH.PublicKeyPath)
	}
	return c.ResolvePath(c.SSH.PrivateKeyPath) + ".pub"
}

// PrivateKeyPath returns the resolved private key path.
func (c *Config) PrivateKeyPath() string {
	return c.ResolvePath(c.SSH.PrivateKeyPath)
}

// ImageRef returns registry/image:tag.
func (c *ContainerConfig) ImageRef() string {
	return fmt.Sprintf("%s/%s:%s", c.Registry, c.Image, c.Tag)
}
