package config

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ValidLocations contains all valid Hetzner Cloud datacenter locations.
var ValidLocations = map[string]string{
	"nbg1": "Nuremberg, Germany",
	"fsn1": "Falkenstein, Germany",
	"hel1": "Helsinki, Finland",
	"ash":  "Ashburn, USA",
	"hil":  "Hillsboro, USA",
	"sin":  "Singapore",
}

var (
	tagRegex        = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]{0,127}$`)
	imagePathRegex  = regexp.MustCompile(`^[a-z0-9]+([._-][a-z0-9]+)*(/[a-z0-9]+([._-][a-z0-9]+)*)*$`)
	registryRegex   = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?(:[0-9]{1,5})?$`)
	envKeyRegex     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	serverTypeRegex = regexp.MustCompile(`^[a-z]+[0-9]+$`)
)

// Validate validates the configuration and returns every problem found.
// ApplyDefaults is expected to have run first.
func (c *Config) Validate() error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	} else if !isValidDNSName(c.Name) {
		errs = append(errs, errors.New("name must be DNS-safe (lowercase alphanumeric and hyphens, must start with letter, max 63 chars)"))
	}

	if _, ok := ValidLocations[c.Location]; !ok {
		errs = append(errs, fmt.Errorf("location %q is invalid: must be one of %v", c.Location, LocationNames()))
	}

	if !serverTypeRegex.MatchString(c.ServerType) {
		errs = append(errs, fmt.Errorf("server_type %q is invalid", c.ServerType))
	}

	if c.Image == "" {
		errs = append(errs, errors.New("image is required"))
	}

	errs = append(errs, c.validateContainer()...)
	errs = append(errs, c.validateFirewall()...)

	if c.State.Enabled() && c.State.Endpoint == "" {
		errs = append(errs, errors.New("state.endpoint is required when state.bucket is set"))
	}

	return errors.Join(errs...)
}

func (c *Config) validateContainer() []error {
	var errs []error
	ct := c.Container

	switch {
	case ct.Image == "":
		errs = append(errs, errors.New("container.image is required"))
	case strings.Contains(ct.Image, ":") || strings.Contains(ct.Image, "@"):
		errs = append(errs, errors.New("container.image must not include a tag or digest, use container.tag"))
	case !imagePathRegex.MatchString(ct.Image):
		errs = append(errs, fmt.Errorf("container.image %q is not a valid repository path", ct.Image))
	}

	if !tagRegex.MatchString(ct.Tag) {
		errs = append(errs, fmt.Errorf("container.tag %q is invalid", ct.Tag))
	}

	if !registryRegex.MatchString(ct.Registry) {
		errs = append(errs, fmt.Errorf("container.registry %q must be a host name with optional port", ct.Registry))
	}

	for k, v := range ct.Env {
		if !envKeyRegex.MatchString(k) {
			errs = append(errs, fmt.Errorf("container.env key %q is invalid", k))
		}
		if strings.ContainsAny(v, "\n\r") {
			errs = append(errs, fmt.Errorf("container.env %s must be a single line", k))
		}
	}

	return errs
}

func (c *Config) validateFirewall() []error {
	var errs []error
	fw := c.Firewall

	for _, cidr := range fw.SSHSources {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errs = append(errs, fmt.Errorf("firewall.ssh_sources: invalid CIDR %q", cidr))
		}
	}
	for _, cidr := range fw.HTTPSources {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errs = append(errs, fmt.Errorf("firewall.http_sources: invalid CIDR %q", cidr))
		}
	}

	for i, rule := range fw.ExtraRules {
		if err := rule.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("firewall.extra_rules[%d]: %w", i, err))
		}
	}

	return errs
}

// Validate checks a single extra firewall rule.
func (r FirewallRule) Validate() error {
	var errs []error

	switch r.Direction {
	case "in":
		if len(r.SourceIPs) == 0 {
			errs = append(errs, errors.New("inbound rule needs source_ips"))
		}
	case "out":
		if len(r.DestinationIPs) == 0 {
			errs = append(errs, errors.New("outbound rule needs destination_ips"))
		}
	default:
		errs = append(errs, fmt.Errorf("direction %q must be in or out", r.Direction))
	}

	switch r.Protocol {
	case "tcp", "udp":
		if err := validatePort(r.Port); err != nil {
			errs = append(errs, err)
		}
	case "icmp", "esp", "gre":
		if r.Port != "" {
			errs = append(errs, fmt.Errorf("protocol %s does not take a port", r.Protocol))
		}
	default:
		errs = append(errs, fmt.Errorf("protocol %q must be one of tcp, udp, icmp, esp, gre", r.Protocol))
	}

	for _, cidr := range append(append([]string{}, r.SourceIPs...), r.DestinationIPs...) {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errs = append(errs, fmt.Errorf("invalid CIDR %q", cidr))
		}
	}

	return errors.Join(errs...)
}

// validatePort accepts "any", a single port or a "low-high" range.
func validatePort(port string) error {
	if port == "" {
		return errors.New("port is required for tcp and udp")
	}
	if port == "any" {
		return nil
	}

	low, high, isRange := strings.Cut(port, "-")
	lo, err := parsePort(low)
	if err != nil {
		return err
	}
	if !isRange {
		return nil
	}
	hi, err := parsePort(high)
	if err != nil {
		return err
	}
	if lo > hi {
		return fmt.Errorf("port range %q is reversed", port)
	}
	return nil
}

func parsePort(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return 0, fmt.Errorf("port %q must be between 1 and 65535", s)
	}
	return n, nil
}

// LocationNames returns the valid location codes in sorted order.
func LocationNames() []string {
	names := make([]string, 0, len(ValidLocations))
	for name := range ValidLocations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isValidDNSName checks if a string is a valid DNS label.
// Must be lowercase, alphanumeric with hyphens, start with a letter, max 63 chars.
func isValidDNSName(name string) bool {
	if len(name) == 0 || len(name) > 63 {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' {
		return false
	}
	last := name[len(name)-1]
	if (last < 'a' || last > 'z') && (last < '0' || last > '9') {
		return false
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return !strings.Contains(name, "--")
}
