// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max attempts,
// initial delay, and maximum delay. It wraps Hetzner Cloud API calls, SSH
// dials and readiness probes. Errors wrapped with [Fatal] stop the loop.
package retry
