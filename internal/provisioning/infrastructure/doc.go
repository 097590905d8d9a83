// Package infrastructure provisions the resources a server depends on:
// the SSH key and the firewall.
//
// The firewall targets servers by label selector, so it has to exist
// before the compute phase creates the server.
package infrastructure
