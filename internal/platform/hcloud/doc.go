// Package hcloud wraps the Hetzner Cloud API with the retry, timeout and
// error handling a stack deployment needs.
//
// # Generic Operations
//
// EnsureOperation gives get-or-create semantics with an optional update
// step for existing resources. DeleteOperation deletes idempotently: a
// resource that is already gone counts as success, and locked resources
// are retried with exponential backoff.
//
// # Resources
//
//   - SSH keys: looked up by name, then by fingerprint, then created
//   - Firewalls: created with rules and a label selector, or reconciled
//   - Servers: created with cloud-init user data; existing ones are reused
//   - Pricing: monthly prices for a server type in a location
//
// Timeouts and retry parameters come from [config.Timeouts].
//
// [MockClient] implements [InfrastructureManager] with overridable
// function fields for provisioning tests.
package hcloud
