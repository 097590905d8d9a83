package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imamik/fxstack/internal/api/middleware"
	"github.com/imamik/fxstack/internal/logging"
	"github.com/imamik/fxstack/internal/metrics"
	"github.com/imamik/fxstack/internal/rates"
)

// Client-facing messages for GET /convert.
const (
	MsgMissingParams  = "Missing required query parameters: 'from', 'to', and 'amount'."
	MsgInvalidAmount  = "'amount' parameter must be a valid number."
	MsgNonPositive    = "Amount must be a positive number."
	msgRatesNotLoaded = "Could not retrieve exchange rates needed for conversion."
)

// ConvertHandler performs conversions against the cached rates.
type ConvertHandler struct {
	source  RatesSource
	metrics *metrics.Metrics
}

// NewConvertHandler creates a new conversion handler. m may be nil.
func NewConvertHandler(source RatesSource, m *metrics.Metrics) *ConvertHandler {
	return &ConvertHandler{source: source, metrics: m}
}

// ConvertResponse is the body of a successful GET /convert.
type ConvertResponse struct {
	Status          string  `json:"status"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	OriginalAmount  float64 `json:"original_amount"`
	ConvertedAmount float64 `json:"converted_amount"`
	RateUsed        float64 `json:"rate_used"`
	TimestampCached int64   `json:"timestamp_cached"`
}

// Convert handles GET /convert?from=&to=&amount=.
//
// The amount is validated before the rates are loaded, so malformed
// requests never reach the upstream.
//
// Returns:
//   - 200 OK with the conversion
//   - 400 Bad Request for missing parameters, a bad amount or an unknown currency
//   - 503 Service Unavailable when no rates are available
func (h *ConvertHandler) Convert(c *gin.Context) {
	from := strings.ToUpper(strings.TrimSpace(c.Query("from")))
	to := strings.ToUpper(strings.TrimSpace(c.Query("to")))
	amountStr := strings.TrimSpace(c.Query("amount"))

	if from == "" || to == "" || amountStr == "" {
		respondError(c, http.StatusBadRequest, MsgMissingParams)
		return
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		respondError(c, http.StatusBadRequest, MsgInvalidAmount)
		return
	}
	if amount <= 0 {
		respondError(c, http.StatusBadRequest, MsgNonPositive)
		return
	}

	res, err := h.source.Get(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, fmt.Sprintf("%s %v", msgRatesNotLoaded, err))
		return
	}

	conv, err := rates.Convert(res.Snapshot, from, to, amount)
	if err != nil {
		var unsupported *rates.UnsupportedCurrencyError
		switch {
		case errors.As(err, &unsupported):
			respondError(c, http.StatusBadRequest,
				fmt.Sprintf("%s currency '%s' is not supported.", unsupported.Role(), unsupported.Currency))
		case errors.Is(err, rates.ErrNonPositiveAmount):
			respondError(c, http.StatusBadRequest, MsgNonPositive)
		default:
			_ = c.Error(err)
			respondError(c, http.StatusInternalServerError, fmt.Sprintf("Internal Server Error: %v", err))
		}
		return
	}

	if h.metrics != nil {
		h.metrics.Conversions.Inc()
	}
	middleware.GetLogger(c).Debug("converted",
		zap.String(logging.FieldCurrencyFrom, conv.From),
		zap.String(logging.FieldCurrencyTo, conv.To),
		zap.Bool("stale", res.Stale),
	)

	c.JSON(http.StatusOK, ConvertResponse{
		Status:          StatusSuccess,
		FromCurrency:    conv.From,
		ToCurrency:      conv.To,
		OriginalAmount:  conv.Amount,
		ConvertedAmount: conv.Converted,
		RateUsed:        conv.RateUsed,
		TimestampCached: res.Timestamp(),
	})
}
