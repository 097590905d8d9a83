package rates

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrNonPositiveAmount is returned for zero or negative amounts.
var ErrNonPositiveAmount = errors.New("amount must be a positive number")

// UnsupportedCurrencyError names a currency missing from the snapshot.
type UnsupportedCurrencyError struct {
	Currency string
	Source   bool
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("%s currency %q is not supported", strings.ToLower(e.Role()), e.Currency)
}

// Role is "Source" or "Target".
func (e *UnsupportedCurrencyError) Role() string {
	if e.Source {
		return "Source"
	}
	return "Target"
}

// Conversion is the result of converting an amount between currencies.
type Conversion struct {
	From      string
	To        string
	Amount    float64
	Converted float64 // rounded to 4 decimals
	RateUsed  float64 // rounded to 6 decimals
}

// Convert converts amount from one currency to another through the base
// currency. Currency codes are upper-cased.
func Convert(snap *Snapshot, from, to string, amount float64) (Conversion, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if !(amount > 0) || math.IsInf(amount, 1) {
		return Conversion{}, ErrNonPositiveAmount
	}

	rateFrom, ok := snap.Rates[from]
	if !ok || rateFrom <= 0 {
		return Conversion{}, &UnsupportedCurrencyError{Currency: from, Source: true}
	}
	rateTo, ok := snap.Rates[to]
	if !ok {
		return Conversion{}, &UnsupportedCurrencyError{Currency: to}
	}

	inBase := amount / rateFrom
	return Conversion{
		From:      from,
		To:        to,
		Amount:    amount,
		Converted: round(inBase*rateTo, 4),
		RateUsed:  round(rateTo/rateFrom, 6),
	}, nil
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
