// Package rates fetches, caches and applies currency exchange rates.
//
// Rates come from an ExchangeRate-API compatible upstream with USD as the
// base currency. [Cache] keeps the latest snapshot for a fixed TTL,
// collapses concurrent refreshes into a single upstream request and falls
// back to the last snapshot when the upstream fails. [Convert] performs the
// cross-rate arithmetic.
package rates
