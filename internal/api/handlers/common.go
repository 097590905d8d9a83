// Package handlers provides HTTP handlers for the conversion API.
//
// This package implements the health check, the rate listing and the
// conversion endpoint. Every error is returned in the same JSON envelope.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/imamik/fxstack/internal/rates"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RatesSource is the part of the rates cache the handlers need.
type RatesSource interface {
	Get(ctx context.Context) (rates.Result, error)
}

// ErrorResponse represents a standardized error response.
//
// All API errors are returned in this format to provide consistent
// error handling for clients.
type ErrorResponse struct {
	// Status is always "error".
	Status string `json:"status"`

	// Message is a human-readable error message.
	Message string `json:"message"`
}

// respondError sends a standardized error response and aborts the chain.
//
// Parameters:
//   - c: Gin context
//   - statusCode: HTTP status code
//   - message: Human-readable error message
func respondError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  StatusError,
		Message: message,
	})
}
