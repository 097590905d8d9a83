// Package ssh provides an SSH client for running commands on the stack
// instance.
//
// The logs command uses it to read the application container's output.
// Connections are retried with exponential backoff because a freshly
// created server may not accept SSH yet.
package ssh
