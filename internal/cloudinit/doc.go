// Package cloudinit renders the #cloud-config user-data that boots an
// instance into the application container.
//
// The document installs Docker, logs in to the registry with a token
// passed on stdin, pulls the image and runs it with a restart policy.
// [Render] serialises a typed document with yaml.v3 so user-controlled
// values never need YAML escaping by hand.
package cloudinit
