package infrastructure

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/fxstack/internal/config"
	"github.com/imamik/fxstack/internal/provisioning"
	"github.com/imamik/fxstack/internal/util/labels"
	"github.com/imamik/fxstack/internal/util/naming"
)

// AllPorts is the port range used for unrestricted tcp and udp rules.
const AllPorts = "1-65535"

// ProvisionFirewall reconciles the stack firewall and applies it to the
// stack's servers by label selector.
func (p *Provisioner) ProvisionFirewall(ctx *provisioning.Context) error {
	name := naming.Firewall(ctx.Config.Name)
	ctx.Observer.Printf("[%s] Reconciling firewall %s...", phase, name)

	rules := BuildRules(ctx.Config, ctx.State.PublicIP)
	fwLabels := labels.NewLabelBuilder(ctx.Config.Name).
		WithRole(labels.RoleFirewall).
		Merge(ctx.Config.Labels).
		Build()
	selector := labels.SelectorForStack(ctx.Config.Name)

	fw, err := ctx.Infra.EnsureFirewall(ctx, name, rules, fwLabels, selector)
	if err != nil {
		return fmt.Errorf("failed to ensure firewall: %w", err)
	}

	ctx.State.Firewall = fw
	ctx.Observer.Printf("[%s] Firewall %s applied to servers with label selector: %s", phase, name, selector)
	return nil
}

// BuildRules returns the firewall rules for cfg: SSH, HTTP and HTTPS
// inbound, unrestricted outbound, then the user's extra rules.
func BuildRules(cfg *config.Config, publicIP string) []hcloud.FirewallRule {
	fw := cfg.Firewall
	anyNet := parseCIDRs([]string{config.AnyIPv4, config.AnyIPv6})

	sshSources := append([]string{}, fw.SSHSources...)
	if fw.UseCurrentIPv4 && publicIP != "" {
		sshSources = append(sshSources, publicIP+"/32")
	}

	var rules []hcloud.FirewallRule

	if nets := parseCIDRs(sshSources); len(nets) > 0 {
		rules = append(rules, inboundTCP("Allow SSH", config.PortSSH, nets))
	}
	if nets := parseCIDRs(fw.HTTPSources); len(nets) > 0 {
		rules = append(rules,
			inboundTCP("Allow HTTP", config.PortHTTP, nets),
			inboundTCP("Allow HTTPS", config.PortHTTPS, nets),
		)
	}

	rules = append(rules,
		hcloud.FirewallRule{
			Description:    hcloud.Ptr("Allow all outbound TCP"),
			Direction:      hcloud.FirewallRuleDirectionOut,
			Protocol:       hcloud.FirewallRuleProtocolTCP,
			Port:           hcloud.Ptr(AllPorts),
			DestinationIPs: anyNet,
		},
		hcloud.FirewallRule{
			Description:    hcloud.Ptr("Allow all outbound UDP"),
			Direction:      hcloud.FirewallRuleDirectionOut,
			Protocol:       hcloud.FirewallRuleProtocolUDP,
			Port:           hcloud.Ptr(AllPorts),
			DestinationIPs: anyNet,
		},
		hcloud.FirewallRule{
			Description:    hcloud.Ptr("Allow all outbound ICMP"),
			Direction:      hcloud.FirewallRuleDirectionOut,
			Protocol:       hcloud.FirewallRuleProtocolICMP,
			DestinationIPs: anyNet,
		},
	)

	for _, rule := range fw.ExtraRules {
		rules = append(rules, buildFirewallRule(rule))
	}
	return rules
}

func inboundTCP(description string, port int, sources []net.IPNet) hcloud.FirewallRule {
	return hcloud.FirewallRule{
		Description: hcloud.Ptr(description),
		Direction:   hcloud.FirewallRuleDirectionIn,
		Protocol:    hcloud.FirewallRuleProtocolTCP,
		Port:        hcloud.Ptr(strconv.Itoa(port)),
		SourceIPs:   sources,
	}
}

// parseCIDRs parses a slice of CIDR strings into net.IPNet, skipping invalid entries.
func parseCIDRs(cidrs []string) []net.IPNet {
	var nets []net.IPNet
	for _, cidr := range cidrs {
		_, n, err := net.ParseCIDR(cidr)
		if err == nil {
			nets = append(nets, *n)
		}
	}
	return nets
}

// buildFirewallRule converts a config FirewallRule to an hcloud FirewallRule.
func buildFirewallRule(rule config.FirewallRule) hcloud.FirewallRule {
	direction := hcloud.FirewallRuleDirectionIn
	if rule.Direction == "out" {
		direction = hcloud.FirewallRuleDirectionOut
	}

	r := hcloud.FirewallRule{
		Direction:      direction,
		Protocol:       parseProtocol(rule.Protocol),
		SourceIPs:      parseCIDRs(rule.SourceIPs),
		DestinationIPs: parseCIDRs(rule.DestinationIPs),
	}
	if rule.Description != "" {
		r.Description = hcloud.Ptr(rule.Description)
	}
	if rule.Port != "" {
		port := rule.Port
		if port == "any" {
			port = AllPorts
		}
		r.Port = hcloud.Ptr(port)
	}
	return r
}

// parseProtocol converts a protocol string to hcloud FirewallRuleProtocol.
func parseProtocol(proto string) hcloud.FirewallRuleProtocol {
	switch proto {
	case "udp":
		return hcloud.FirewallRuleProtocolUDP
	case "icmp":
		return hcloud.FirewallRuleProtocolICMP
	case "gre":
		return hcloud.FirewallRuleProtocolGRE
	case "esp":
		return hcloud.FirewallRuleProtocolESP
	default:
		return hcloud.FirewallRuleProtocolTCP
	}
}
