package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by the conversion service.
const (
	EnvPort           = "PORT"
	EnvRatesURL       = "FXSTACK_RATES_URL"
	EnvRatesAPIKey    = "FXSTACK_RATES_API_KEY"
	EnvRatesTTL       = "FXSTACK_RATES_TTL"
	EnvLogLevel       = "FXSTACK_LOG_LEVEL"
	EnvEnvironment    = "FXSTACK_ENV"
	EnvRateLimitRPS   = "FXSTACK_RATE_LIMIT_RPS"
	EnvRateLimitBurst = "FXSTACK_RATE_LIMIT_BURST"
	EnvTrustedProxies = "FXSTACK_TRUSTED_PROXIES"
)

// Service defaults.
const (
	DefaultServicePort    = 80
	DefaultRatesTTL       = 60 * time.Second
	DefaultRateLimitRPS   = 10.0
	DefaultRateLimitBurst = 20
	DefaultShutdownDrain  = 10 * time.Second
)

// ServiceConfig configures the conversion service run by "fxstack serve".
type ServiceConfig struct {
	// Port is the TCP port the HTTP server listens on.
	Port int

	// RatesURL overrides the upstream base URL. Empty selects the keyed
	// or open access endpoint depending on RatesAPIKey.
	RatesURL string

	// RatesAPIKey is the ExchangeRate-API key. Optional.
	RatesAPIKey string

	// RatesTTL is how long fetched rates are served from memory.
	RatesTTL time.Duration

	LogLevel    string
	Environment string

	// RateLimitRPS and RateLimitBurst size the per-client token bucket.
	// A zero RPS disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// TrustedProxies are IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means clients connect directly.
	TrustedProxies []string

	// ShutdownDrain bounds how long in-flight requests get on shutdown.
	ShutdownDrain time.Duration
}

// LoadServiceConfig reads the service configuration from the environment.
// Unlike LoadTimeouts, malformed values are reported rather than replaced.
func LoadServiceConfig() (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Port:           DefaultServicePort,
		RatesURL:       strings.TrimRight(strings.TrimSpace(os.Getenv(EnvRatesURL)), "/"),
		RatesAPIKey:    strings.TrimSpace(os.Getenv(EnvRatesAPIKey)),
		RatesTTL:       DefaultRatesTTL,
		LogLevel:       envOr(EnvLogLevel, "info"),
		Environment:    envOr(EnvEnvironment, "production"),
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
		ShutdownDrain:  DefaultShutdownDrain,
	}

	var errs []error
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s %q must be a port between 1 and 65535", EnvPort, v))
		} else {
			cfg.Port = port
		}
	}
	if v := os.Getenv(EnvRatesTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			errs = append(errs, fmt.Errorf("%s %q must be a positive duration", EnvRatesTTL, v))
		} else {
			cfg.RatesTTL = ttl
		}
	}
	if v := os.Getenv(EnvRateLimitRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			errs = append(errs, fmt.Errorf("%s %q must be a non-negative number", EnvRateLimitRPS, v))
		} else {
			cfg.RateLimitRPS = rps
		}
	}
	if v := os.Getenv(EnvRateLimitBurst); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 1 {
			errs = append(errs, fmt.Errorf("%s %q must be a positive integer", EnvRateLimitBurst, v))
		} else {
			cfg.RateLimitBurst = burst
		}
	}
	for _, p := range splitList(os.Getenv(EnvTrustedProxies)) {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				errs = append(errs, fmt.Errorf("%s: %q is not an IP address or CIDR", EnvTrustedProxies, p))
				continue
			}
		}
		cfg.TrustedProxies = append(cfg.TrustedProxies, p)
	}
	if cfg.Environment != "production" && cfg.Environment != "development" {
		errs = append(errs, fmt.Errorf("%s %q must be production or development", EnvEnvironment, cfg.Environment))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c *ServiceConfig) Addr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
