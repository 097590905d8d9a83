// Package keygen generates and loads RSA key pairs for SSH authentication.
//
// Keys are produced in PEM format (private) and OpenSSH authorized_keys
// format (public), suitable for uploading to Hetzner Cloud as SSH keys.
// When a stack is configured to generate its own key, the pair is written
// next to the config file and reused on later runs.
package keygen
