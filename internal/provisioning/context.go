package provisioning

import (
	"context"
	"net/http"
	"time"

	"github.com/imamik/fxstack/internal/config"
	hcloud_internal "github.com/imamik/fxstack/internal/platform/hcloud"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	Secrets  config.Secrets
	State    *State
	Infra    hcloud_internal.InfrastructureManager
	Observer Observer
	Timeouts *config.Timeouts

	// HTTPClient probes the service once the server is up.
	HTTPClient *http.Client
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	infra hcloud_internal.InfrastructureManager,
	secrets config.Secrets,
) *Context {
	return &Context{
		Context:    ctx,
		Config:     cfg,
		Secrets:    secrets,
		State:      NewState(),
		Infra:      infra,
		Observer:   NewConsoleObserver(),
		Timeouts:   config.LoadTimeouts(),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}
