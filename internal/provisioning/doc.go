// Package provisioning provides shared types, interfaces, and orchestration
// for bringing up a single-instance stack.
//
// # Subpackages
//
//   - infrastructure/: SSH key and firewall
//   - compute/: cloud-init rendering and the server
//   - ready/: waiting for the service health endpoint
//   - destroy/: teardown and label-based sweep
//
// # Core Types
//
// Context carries configuration, secrets, state, the infrastructure client
// and the observer. Phase defines a provisioning step with Name() and
// Provision() methods. State accumulates results from each phase.
package provisioning
