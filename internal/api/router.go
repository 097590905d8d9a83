// Package api wires the conversion service's HTTP surface: the gin router
// with its middleware chain and a server with graceful shutdown.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/imamik/fxstack/internal/api/handlers"
	"github.com/imamik/fxstack/internal/api/middleware"
	"github.com/imamik/fxstack/internal/metrics"
)

// RouterConfig holds configuration for setting up the HTTP router.
type RouterConfig struct {
	// Rates serves the exchange rate table.
	Rates handlers.RatesSource

	// Logger is the Zap logger for request logging.
	Logger *zap.Logger

	// Metrics receives HTTP and conversion metrics and backs /metrics.
	Metrics *metrics.Metrics

	// RateLimitRPS and RateLimitBurst size the per-IP token bucket.
	// A zero RPS disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is
	// honored. Empty trusts none and keys clients by their socket address.
	TrustedProxies []string
}

// SetupRouter creates and configures the Gin HTTP router.
//
// This function sets up:
// - Global middleware (recovery, metrics, request logging, rate limiting)
// - The health endpoint
// - The rates and conversion endpoints
// - The Prometheus metrics endpoint
//
// The context stops the rate limiter's cleanup goroutine.
func SetupRouter(ctx context.Context, config *RouterConfig) *gin.Engine {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := config.Metrics
	if m == nil {
		m = metrics.New()
	}

	router := gin.New()

	// Without configured proxies forwarding headers are client controlled
	// and must not pick the rate limit key.
	if err := router.SetTrustedProxies(config.TrustedProxies); err != nil {
		logger.Warn("ignoring invalid trusted proxies", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(m))
	router.Use(middleware.RequestLogger(logger))

	if config.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(ctx, config.RateLimitRPS, config.RateLimitBurst, time.Minute)
		router.Use(middleware.RateLimitByIP(limiter, m))
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	router.GET("/health", handlers.Health)
	router.GET("/rates", handlers.NewRatesHandler(config.Rates).List)
	router.GET("/convert", handlers.NewConvertHandler(config.Rates, m).Convert)

	return router
}
