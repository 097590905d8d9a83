// Package naming provides consistent naming functions for Hetzner Cloud resources.
//
// A stack owns exactly one resource of each kind, so most names are the
// stack name itself; Hetzner scopes names per resource type.
package naming
