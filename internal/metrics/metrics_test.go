package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	a.Conversions.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Conversions))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Conversions))
}

func TestNew_Exposition(t *testing.T) {
	t.Parallel()
	m := New()
	m.RatesCacheLookups.WithLabelValues("hit").Inc()
	m.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()

	err := testutil.GatherAndCompare(m.Registry, strings.NewReader(`
# HELP fxstack_rates_cache_lookups_total Exchange rate cache lookups by outcome
# TYPE fxstack_rates_cache_lookups_total counter
fxstack_rates_cache_lookups_total{outcome="hit"} 1
`), "fxstack_rates_cache_lookups_total")
	require.NoError(t, err)

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "fxstack_http_requests_total")
	assert.Contains(t, names, "go_goroutines")
}
