package rates

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/imamik/fxstack/internal/logging"
	"github.com/imamik/fxstack/internal/metrics"
)

// DefaultTTL is how long a snapshot is served without refetching.
const DefaultTTL = 60 * time.Second

// Lookup outcomes reported to metrics.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeStale = "stale"
)

// Result is a snapshot plus how it was obtained.
type Result struct {
	*Snapshot

	// Stale is set when the upstream failed and an expired snapshot was
	// served instead.
	Stale bool

	// Err is the upstream error behind a stale result.
	Err error
}

// Cache serves snapshots from memory and refreshes them through a Fetcher.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	snapshot *Snapshot

	group singleflight.Group
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets how long a snapshot stays fresh.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithCacheClock overrides the clock used for expiry.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithMetrics records lookups and upstream fetches.
func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *Cache) {
		c.metrics = m
	}
}

// NewCache creates an empty cache in front of fetcher.
func NewCache(fetcher Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		fetcher: fetcher,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String(logging.FieldComponent, "rates"))
	return c
}

// Get returns a fresh snapshot when one is cached, otherwise refreshes.
// When the refresh fails the previous snapshot is returned as stale; with
// nothing cached the upstream error is returned.
func (c *Cache) Get(ctx context.Context) (Result, error) {
	if snap := c.fresh(); snap != nil {
		c.logger.Debug("serving rates from cache")
		c.observeLookup(OutcomeHit)
		return Result{Snapshot: snap}, nil
	}

	// Waiters share one fetch. It is detached from the caller so one
	// cancelled request does not fail the others.
	ch := c.group.DoChan("latest", func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res := <-ch:
		if res.Err == nil {
			c.observeLookup(OutcomeMiss)
			return Result{Snapshot: res.Val.(*Snapshot)}, nil
		}
		if snap := c.Current(); snap != nil {
			c.logger.Warn("upstream fetch failed, falling back to expired cache", zap.Error(res.Err))
			c.observeLookup(OutcomeStale)
			return Result{Snapshot: snap, Stale: true, Err: res.Err}, nil
		}
		return Result{}, res.Err
	}
}

// Current returns the cached snapshot regardless of age, or nil.
func (c *Cache) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Cache) fresh() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot != nil && c.now().Before(c.snapshot.FetchedAt.Add(c.ttl)) {
		return c.snapshot
	}
	return nil
}

func (c *Cache) refresh(ctx context.Context) (*Snapshot, error) {
	// A flight that finished just before this one may already have
	// refreshed the snapshot.
	if snap := c.fresh(); snap != nil {
		return snap, nil
	}

	c.logger.Info("cache expired or empty, fetching new rates")
	start := time.Now()
	snap, err := c.fetcher.Fetch(ctx)
	c.observeFetch(err, time.Since(start))
	if err != nil {
		c.logger.Error("failed to fetch exchange rates", zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	c.logger.Info("fetched and cached exchange rates", zap.Int(logging.FieldRateCount, len(snap.Rates)))
	return snap, nil
}

func (c *Cache) observeLookup(outcome string) {
	if c.metrics != nil {
		c.metrics.RatesCacheLookups.WithLabelValues(outcome).Inc()
	}
}

func (c *Cache) observeFetch(err error, d time.Duration) {
	if c.metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	c.metrics.RatesUpstreamFetches.WithLabelValues(result).Inc()
	c.metrics.RatesUpstreamDuration.Observe(d.Seconds())
}
