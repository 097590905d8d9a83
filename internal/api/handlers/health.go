package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Currency Conversion API"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health handles GET /health.
//
// It always returns 200 OK while the HTTP server is running and does not
// touch the upstream, so the provisioner's readiness probe only waits for
// the container to come up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: ServiceName,
	})
}
