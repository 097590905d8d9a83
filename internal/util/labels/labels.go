package labels

import (
	"sort"
	"strings"
)

// Standard label keys for Hetzner Cloud resources.
const (
	// KeyStack identifies which stack a resource belongs to
	KeyStack = "fxstack.io/stack"

	// KeyRole identifies what a resource does within the stack
	KeyRole = "fxstack.io/role"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "fxstack.io/managed-by"
)

// Role values
const (
	RoleApp      = "app"
	RoleFirewall = "firewall"
	RoleSSHKey   = "ssh-key"
)

// ManagedByFxstack marks resources created by this tool.
const ManagedByFxstack = "fxstack"

// LabelBuilder provides a fluent interface for building Hetzner Cloud resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the stack name pre-set.
func NewLabelBuilder(stack string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyStack:     stack,
			KeyManagedBy: ManagedByFxstack,
		},
	}
}

// WithRole adds a role label.
func (lb *LabelBuilder) WithRole(role string) *LabelBuilder {
	lb.labels[KeyRole] = role
	return lb
}

// Merge adds all labels from the provided map. Reserved fxstack.io keys
// are not overridden.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		if strings.HasPrefix(k, "fxstack.io/") {
			continue
		}
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// ForStack returns the minimal label set identifying a stack.
func ForStack(stack string) map[string]string {
	return map[string]string{KeyStack: stack}
}

// SelectorForStack returns a label selector string for all resources in a stack.
func SelectorForStack(stack string) string {
	return KeyStack + "=" + stack
}

// Selector renders a label map as a Hetzner label selector with keys in
// sorted order.
func Selector(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+labels[k])
	}
	return strings.Join(parts, ",")
}
