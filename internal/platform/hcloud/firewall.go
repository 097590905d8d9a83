package hcloud

import (
	"context"
	"maps"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureFirewall creates the firewall with rules and labels, applied to
// servers matching applyToLabelSelector. On an existing firewall the rules
// and labels are reset and the selector is applied if missing.
func (c *RealClient) EnsureFirewall(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string, applyToLabelSelector string) (*hcloud.Firewall, error) {
	return (&EnsureOperation[*hcloud.Firewall, hcloud.FirewallCreateOpts, hcloud.FirewallSetRulesOpts]{
		Name:         name,
		ResourceType: "firewall",
		Get:          c.client.Firewall.Get,
		Create:       c.createFirewall,
		Update: func(ctx context.Context, fw *hcloud.Firewall, opts hcloud.FirewallSetRulesOpts) ([]*hcloud.Action, *hcloud.Response, error) {
			return c.reconcileFirewall(ctx, fw, opts, labels, applyToLabelSelector)
		},
		CreateOptsMapper: func() hcloud.FirewallCreateOpts {
			opts := hcloud.FirewallCreateOpts{
				Name:   name,
				Rules:  rules,
				Labels: labels,
			}
			if applyToLabelSelector != "" {
				opts.ApplyTo = []hcloud.FirewallResource{labelSelectorResource(applyToLabelSelector)}
			}
			return opts
		},
		UpdateOptsMapper: func(_ *hcloud.Firewall) hcloud.FirewallSetRulesOpts {
			return hcloud.FirewallSetRulesOpts{Rules: rules}
		},
	}).Execute(ctx, c)
}

func (c *RealClient) reconcileFirewall(ctx context.Context, fw *hcloud.Firewall, opts hcloud.FirewallSetRulesOpts, labels map[string]string, selector string) ([]*hcloud.Action, *hcloud.Response, error) {
	actions, resp, err := c.client.Firewall.SetRules(ctx, fw, opts)
	if err != nil {
		return nil, resp, err
	}

	if !maps.Equal(fw.Labels, labels) {
		if _, resp, err := c.client.Firewall.Update(ctx, fw, hcloud.FirewallUpdateOpts{Labels: labels}); err != nil {
			return nil, resp, err
		}
	}

	if selector != "" && !appliedToSelector(fw, selector) {
		applied, resp, err := c.client.Firewall.ApplyResources(ctx, fw, []hcloud.FirewallResource{labelSelectorResource(selector)})
		if err != nil {
			return nil, resp, err
		}
		actions = append(actions, applied...)
	}
	return actions, resp, nil
}

func (c *RealClient) createFirewall(ctx context.Context, opts hcloud.FirewallCreateOpts) (*CreateResult[*hcloud.Firewall], *hcloud.Response, error) {
	res, resp, err := c.client.Firewall.Create(ctx, opts)
	if err != nil {
		return nil, resp, err
	}
	return &CreateResult[*hcloud.Firewall]{
		Resource: res.Firewall,
		Actions:  res.Actions,
	}, resp, nil
}

// DeleteFirewall deletes the firewall with the given name. A firewall
// still attached to a server being deleted reports resource_in_use and
// is retried.
func (c *RealClient) DeleteFirewall(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.Firewall]{
		Name:         name,
		ResourceType: "firewall",
		Get:          c.client.Firewall.Get,
		Delete:       c.client.Firewall.Delete,
	}).Execute(ctx, c)
}

// GetFirewall returns the firewall with the given name, or nil.
func (c *RealClient) GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error) {
	fw, _, err := c.client.Firewall.Get(ctx, name)
	return fw, err
}

func labelSelectorResource(selector string) hcloud.FirewallResource {
	return hcloud.FirewallResource{
		Type:          hcloud.FirewallResourceTypeLabelSelector,
		LabelSelector: &hcloud.FirewallResourceLabelSelector{Selector: selector},
	}
}

func appliedToSelector(fw *hcloud.Firewall, selector string) bool {
	for _, r := range fw.AppliedTo {
		if r.Type == hcloud.FirewallResourceTypeLabelSelector && r.LabelSelector != nil && r.LabelSelector.Selector == selector {
			return true
		}
	}
	return false
}
