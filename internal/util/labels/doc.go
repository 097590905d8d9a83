// Package labels provides consistent labeling for Hetzner Cloud resources.
//
// All labels use the fxstack.io domain prefix. Every resource of a stack
// carries the stack label, which is also the selector the firewall uses to
// attach itself to the stack's server and the selector destroy sweeps by.
package labels
