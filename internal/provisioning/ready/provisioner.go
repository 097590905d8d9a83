package ready

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	hcloud_internal "github.com/imamik/fxstack/internal/platform/hcloud"
	"github.com/imamik/fxstack/internal/provisioning"
)

const phase = "ready"

// HealthPath is probed on port 80 of the server.
const HealthPath = "/health"

// Provisioner polls the service until it reports healthy.
type Provisioner struct {
	urlFor func(ip string) string
}

// NewProvisioner creates a new readiness provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{urlFor: HealthURL}
}

// HealthURL returns the health endpoint for a server address.
func HealthURL(ip string) string {
	return "http://" + ip + HealthPath
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	ip := hcloud_internal.ServerIPv4(ctx.State.Server)
	if ip == "" {
		return errors.New("server has no public IPv4 address")
	}
	url := p.urlFor(ip)

	waitCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Ready)
	defer cancel()

	ticker := time.NewTicker(ctx.Timeouts.ReadyInterval)
	defer ticker.Stop()

	ctx.Observer.Printf("[%s] Waiting for %s (timeout %v)...", phase, url, ctx.Timeouts.Ready)
	start := time.Now()
	attempt := 0
	var lastErr error

	for {
		attempt++
		lastErr = probe(waitCtx, ctx.HTTPClient, url, ctx.Timeouts.ReadyProbe)
		if lastErr == nil {
			ctx.State.Healthy = true
			ctx.Observer.Printf("[%s] Service healthy after %v (%d probes)", phase,
				time.Since(start).Round(time.Second), attempt)
			return nil
		}

		select {
		case <-waitCtx.Done():
			return fmt.Errorf("service at %s not healthy after %v: %w", url, ctx.Timeouts.Ready, lastErr)
		case <-ticker.C:
		}
	}
}

// probe bounds each request by timeout so a hung connection does not stall
// the poll loop.
func probe(ctx context.Context, client *http.Client, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
