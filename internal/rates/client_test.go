package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Endpoint(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "https://v6.exchangerate-api.com/v6/k3y/latest/USD", NewClient(DefaultURL+"/", "k3y").Endpoint())
	assert.Equal(t, "https://open.er-api.com/v6/latest/USD", NewClient(OpenAccessURL, "").Endpoint())
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","conversion_rates":{"EUR":0.92,"JPY":150.11,"USD":0.99}}`))
	}))
	t.Cleanup(srv.Close)

	fixed := time.Unix(1_700_000_000, 0)
	snap, err := NewClient(srv.URL, "k3y", WithClock(func() time.Time { return fixed })).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/k3y/latest/USD", gotPath)
	assert.Equal(t, "USD", snap.Base)
	assert.Equal(t, 1.0, snap.Rates["USD"], "base rate is forced to 1")
	assert.Equal(t, 0.92, snap.Rates["EUR"])
	assert.Equal(t, int64(1_700_000_000), snap.Timestamp())
}

func TestClient_Fetch_OpenAccessShape(t *testing.T) {
	t.Parallel()
	srv := upstream(t, http.StatusOK, `{"result":"success","rates":{"EUR":0.9}}`)

	snap, err := NewClient(srv.URL, "").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"EUR": 0.9, "USD": 1.0}, snap.Rates)
}

func TestClient_Fetch_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"http error", http.StatusInternalServerError, `oops`, "upstream returned status 500"},
		{"non-success", http.StatusOK, `{"result":"error","error-type":"invalid-key"}`, "API returned non-success result: invalid-key"},
		{"non-success without type", http.StatusOK, `{"result":"error"}`, "API returned non-success result: Unknown Error"},
		{"no rates", http.StatusOK, `{"result":"success","conversion_rates":{}}`, "API response did not contain conversion rates"},
		{"bad json", http.StatusOK, `{"result":`, "failed to decode exchange rates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := upstream(t, tt.status, tt.body)
			_, err := NewClient(srv.URL, "").Fetch(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClient_Fetch_TransportErrorRedactsKey(t *testing.T) {
	t.Parallel()
	srv := upstream(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "s3cr3t-key").Fetch(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cr3t-key")
	assert.Contains(t, err.Error(), "<redacted>")
}

func TestResolveURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "http://local/v6", ResolveURL("http://local/v6/", "k"))
	assert.Equal(t, DefaultURL, ResolveURL("", "k"))
	assert.Equal(t, OpenAccessURL, ResolveURL("", ""))
}
