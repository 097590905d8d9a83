// Package ready waits until the containerized service on the new server
// answers its health endpoint.
package ready
