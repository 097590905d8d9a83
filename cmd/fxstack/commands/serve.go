package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fxstack/cmd/fxstack/handlers"
)

// Serve returns the command that runs the currency conversion API.
//
// Environment variables:
//
//	PORT: Listen port (default 80)
//	FXSTACK_RATES_URL: Exchange rate API base URL
//	FXSTACK_RATES_API_KEY: Exchange rate API key (optional)
//	FXSTACK_RATES_TTL: How long rates are cached (default 60s)
//	FXSTACK_LOG_LEVEL: debug, info, warn or error
//	FXSTACK_ENV: production or development
//	FXSTACK_TRUSTED_PROXIES: Comma-separated proxy IPs/CIDRs allowed to set X-Forwarded-For
func Serve() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the currency conversion API",
		Long: `Run the currency conversion HTTP API.

This is the container's entrypoint. It serves:

  GET /health    liveness check
  GET /rates     cached USD exchange rates
  GET /convert   ?from=EUR&to=JPY&amount=50
  GET /metrics   Prometheus metrics

The server stops on SIGINT or SIGTERM after draining in-flight requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Serve(cmd.Context())
		},
	}
}
