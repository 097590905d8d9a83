package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imamik/fxstack/internal/api/middleware"
	"github.com/imamik/fxstack/internal/rates"
)

// RatesHandler serves the cached rate table.
type RatesHandler struct {
	source RatesSource
}

// NewRatesHandler creates a new rates handler.
func NewRatesHandler(source RatesSource) *RatesHandler {
	return &RatesHandler{source: source}
}

// RatesResponse is the body of a successful GET /rates.
type RatesResponse struct {
	Status          string             `json:"status"`
	TimestampCached int64              `json:"timestamp_cached"`
	BaseCurrency    string             `json:"base_currency"`
	Rates           map[string]float64 `json:"rates"`
}

// List handles GET /rates.
//
// Returns:
//   - 200 OK with the cached table, which may be stale if the upstream is down
//   - 503 Service Unavailable when no rates have ever been fetched
func (h *RatesHandler) List(c *gin.Context) {
	res, err := h.source.Get(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, fmt.Sprintf("Could not retrieve any exchange rates. %v", err))
		return
	}
	if res.Stale {
		middleware.GetLogger(c).Warn("serving stale rates", zap.Error(res.Err))
	}

	c.JSON(http.StatusOK, RatesResponse{
		Status:          StatusSuccess,
		TimestampCached: res.Timestamp(),
		BaseCurrency:    rates.BaseCurrency,
		Rates:           res.Rates,
	})
}
