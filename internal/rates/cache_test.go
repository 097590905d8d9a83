package rates

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/fxstack/internal/metrics"
)

type fakeFetcher struct {
	calls atomic.Int32
	fn    func(n int32) (*Snapshot, error)
}

func (f *fakeFetcher) Fetch(context.Context) (*Snapshot, error) {
	return f.fn(f.calls.Add(1))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func snapshotAt(t time.Time, eur float64) *Snapshot {
	return &Snapshot{Base: "USD", Rates: map[string]float64{"USD": 1, "EUR": eur}, FetchedAt: t}
}

func newTestCache(f Fetcher, clock *fakeClock, m *metrics.Metrics) *Cache {
	return NewCache(f, WithCacheClock(clock.Now), WithTTL(60*time.Second), WithMetrics(m))
}

func TestCache_FreshHit(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	f := &fakeFetcher{fn: func(int32) (*Snapshot, error) { return snapshotAt(clock.Now(), 0.9), nil }}
	m := metrics.New()
	cache := newTestCache(f, clock, m)

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	clock.Advance(59 * time.Second)
	second, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Same(t, first.Snapshot, second.Snapshot)
	assert.False(t, second.Stale)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RatesCacheLookups.WithLabelValues(OutcomeMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RatesCacheLookups.WithLabelValues(OutcomeHit)))
}

func TestCache_ExpiryRefetches(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	f := &fakeFetcher{fn: func(n int32) (*Snapshot, error) { return snapshotAt(clock.Now(), float64(n)), nil }}
	cache := newTestCache(f, clock, metrics.New())

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	clock.Advance(60 * time.Second)
	res, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.calls.Load())
	assert.Equal(t, 2.0, res.Rates["EUR"])
	assert.Equal(t, int64(1060), res.Timestamp())
}

func TestCache_StaleFallback(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	upstreamErr := errors.New("upstream down")
	f := &fakeFetcher{fn: func(n int32) (*Snapshot, error) {
		if n == 1 {
			return snapshotAt(clock.Now(), 0.9), nil
		}
		return nil, upstreamErr
	}}
	m := metrics.New()
	cache := newTestCache(f, clock, m)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)

	res, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.ErrorIs(t, res.Err, upstreamErr)
	assert.Equal(t, 0.9, res.Rates["EUR"])
	assert.Equal(t, int64(1000), res.Timestamp())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RatesCacheLookups.WithLabelValues(OutcomeStale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RatesUpstreamFetches.WithLabelValues("error")))
}

func TestCache_NoCacheError(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	f := &fakeFetcher{fn: func(int32) (*Snapshot, error) { return nil, errors.New("upstream down") }}
	cache := newTestCache(f, clock, nil)

	_, err := cache.Get(context.Background())
	assert.EqualError(t, err, "upstream down")
	assert.Nil(t, cache.Current())
}

func TestCache_CollapsesConcurrentRefreshes(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	release := make(chan struct{})
	f := &fakeFetcher{fn: func(int32) (*Snapshot, error) {
		<-release
		return snapshotAt(clock.Now(), 0.9), nil
	}}
	cache := newTestCache(f, clock, nil)

	const callers = 20
	var wg sync.WaitGroup
	var started sync.WaitGroup
	started.Add(callers)
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			_, err := cache.Get(context.Background())
			errs <- err
		}()
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestCache_CallerCancellation(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	release := make(chan struct{})
	f := &fakeFetcher{fn: func(int32) (*Snapshot, error) {
		<-release
		return snapshotAt(clock.Now(), 0.9), nil
	}}
	cache := newTestCache(f, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cache.Get(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// The detached fetch still completes and fills the cache.
	close(release)
	require.Eventually(t, func() bool { return cache.Current() != nil }, time.Second, 5*time.Millisecond)
}
