package handlers

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imamik/fxstack/internal/api"
	"github.com/imamik/fxstack/internal/config"
	"github.com/imamik/fxstack/internal/logging"
	"github.com/imamik/fxstack/internal/metrics"
	"github.com/imamik/fxstack/internal/rates"
)

// loadServiceConfig reads the service settings (for testing injection).
var loadServiceConfig = config.LoadServiceConfig

// Serve runs the currency conversion API until SIGINT or SIGTERM, then
// drains in-flight requests.
func Serve(ctx context.Context) error {
	cfg, err := loadServiceConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:            cfg.LogLevel,
		Environment:      logging.Environment(cfg.Environment),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Environment == string(logging.EnvironmentProduction) {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	upstream := rates.ResolveURL(cfg.RatesURL, cfg.RatesAPIKey)
	logger.Info("starting currency conversion service",
		zap.String("addr", cfg.Addr()),
		zap.String("rates_upstream", upstream),
		zap.Duration("rates_ttl", cfg.RatesTTL),
	)

	m := metrics.New()
	cache := rates.NewCache(
		rates.NewClient(upstream, cfg.RatesAPIKey),
		rates.WithTTL(cfg.RatesTTL),
		rates.WithLogger(logger),
		rates.WithMetrics(m),
	)

	router := api.SetupRouter(ctx, &api.RouterConfig{
		Rates:          cache,
		Logger:         logger,
		Metrics:        m,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustedProxies: cfg.TrustedProxies,
	})

	return api.NewServer(cfg.Addr(), router, cfg.ShutdownDrain, logger).ListenAndServe(ctx)
}
