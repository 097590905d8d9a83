// Package compute renders the boot configuration and provisions the
// stack's server.
//
// An existing server with the stack's name is reused as-is, so re-running
// apply never duplicates the instance. Changing the image tag requires a
// destroy and apply cycle.
package compute
