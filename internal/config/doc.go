// Package config defines the stack configuration model.
//
// A stack is described by a small YAML file (fxstack.yaml) naming the
// location and size of the instance, the SSH key to install, the container
// image to run and the firewall sources. Secrets (API tokens, registry
// token, object storage keys) are only ever read from the environment.
// [Config.ApplyDefaults] fills in the opinionated defaults and
// [Config.Validate] reports every problem at once.
package config
