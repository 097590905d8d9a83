package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// BaseCurrency is the currency every rate is quoted against.
	BaseCurrency = "USD"

	// DefaultURL is the keyed ExchangeRate-API v6 endpoint.
	DefaultURL = "https://v6.exchangerate-api.com/v6"

	// OpenAccessURL serves the same data without an API key.
	OpenAccessURL = "https://open.er-api.com/v6"

	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 5 * time.Second

	maxResponseBytes = 1 << 20
)

// Snapshot is one set of rates as fetched from the upstream.
type Snapshot struct {
	Base      string
	Rates     map[string]float64
	FetchedAt time.Time
}

// Timestamp returns the fetch time in Unix seconds.
func (s *Snapshot) Timestamp() int64 {
	return s.FetchedAt.Unix()
}

// Fetcher retrieves a fresh snapshot from the upstream.
type Fetcher interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Client fetches rates from an ExchangeRate-API compatible endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	now        func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock overrides the clock stamped onto snapshots.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a client for baseURL. When apiKey is empty the key
// segment is omitted from the request path.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requested by Fetch.
func (c *Client) Endpoint() string {
	if c.apiKey == "" {
		return c.baseURL + "/latest/" + BaseCurrency
	}
	return c.baseURL + "/" + c.apiKey + "/latest/" + BaseCurrency
}

type latestResponse struct {
	Result    string `json:"result"`
	ErrorType string `json:"error-type"`
	BaseCode  string `json:"base_code"`

	// Keyed endpoints return conversion_rates, open access returns rates.
	ConversionRates map[string]float64 `json:"conversion_rates"`
	Rates           map[string]float64 `json:"rates"`
}

// Fetch requests the latest rates.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching exchange rates: %w", c.redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error fetching exchange rates: upstream returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode exchange rates: %w", err)
	}

	if body.Result != "success" {
		errorType := body.ErrorType
		if errorType == "" {
			errorType = "Unknown Error"
		}
		return nil, fmt.Errorf("API returned non-success result: %s", errorType)
	}

	rates := body.ConversionRates
	if len(rates) == 0 {
		rates = body.Rates
	}
	if len(rates) == 0 {
		return nil, errors.New("API response did not contain conversion rates")
	}

	base := body.BaseCode
	if base == "" {
		base = BaseCurrency
	}
	rates[base] = 1.0

	return &Snapshot{Base: base, Rates: rates, FetchedAt: c.now()}, nil
}

// redact strips the API key from transport errors, which embed the URL.
func (c *Client) redact(err error) error {
	if c.apiKey == "" || !strings.Contains(err.Error(), c.apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), c.apiKey, "<redacted>"))
}

// ResolveURL picks the upstream base URL: an explicit override wins, then
// the keyed endpoint when a key is set, else the open access endpoint.
func ResolveURL(override, apiKey string) string {
	switch {
	case override != "":
		return strings.TrimRight(override, "/")
	case apiKey != "":
		return DefaultURL
	default:
		return OpenAccessURL
	}
}
