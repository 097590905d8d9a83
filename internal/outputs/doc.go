// Package outputs derives and persists the values a stack exports after
// apply: the instance ID, its public IPv4 address, an SSH command and the
// HTTP URL of the service.
//
// Outputs are written to outputs.json next to the config file and, when a
// state bucket is configured, published to S3-compatible object storage.
package outputs
