package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
type Timeouts struct {
	ServerCreate      time.Duration // Timeout for server creation
	Delete            time.Duration // Timeout for each delete operation
	Ready             time.Duration // Timeout for the service to answer /health
	ReadyInterval     time.Duration // Delay between readiness probes
	ReadyProbe        time.Duration // Timeout for a single readiness probe
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - FXSTACK_TIMEOUT_SERVER_CREATE (default: 10m)
//   - FXSTACK_TIMEOUT_DELETE (default: 5m)
//   - FXSTACK_TIMEOUT_READY (default: 10m)
//   - FXSTACK_READY_INTERVAL (default: 10s)
//   - FXSTACK_READY_PROBE_TIMEOUT (default: 5s)
//   - FXSTACK_RETRY_MAX_ATTEMPTS (default: 5)
//   - FXSTACK_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ServerCreate:      parseDuration("FXSTACK_TIMEOUT_SERVER_CREATE", 10*time.Minute),
		Delete:            parseDuration("FXSTACK_TIMEOUT_DELETE", 5*time.Minute),
		Ready:             parseDuration("FXSTACK_TIMEOUT_READY", 10*time.Minute),
		ReadyInterval:     parseDuration("FXSTACK_READY_INTERVAL", 10*time.Second),
		ReadyProbe:        parseDuration("FXSTACK_READY_PROBE_TIMEOUT", 5*time.Second),
		RetryMaxAttempts:  parseInt("FXSTACK_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("FXSTACK_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

// TestTimeouts returns short timeouts for tests.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		ServerCreate:      5 * time.Second,
		Delete:            5 * time.Second,
		Ready:             2 * time.Second,
		ReadyInterval:     10 * time.Millisecond,
		ReadyProbe:        100 * time.Millisecond,
		RetryMaxAttempts:  3,
		RetryInitialDelay: 10 * time.Millisecond,
	}
}
