package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventkompass/services/metrics"
	"eventkompass/utils"
)

// HealthHandler reports the latest health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status.Status, "redis": status.Redis, "checkedAt": status.CheckedAt, "message": "Hi, I'm EventKompass"})
}

// MetricsHandler serves the prometheus registry.
func MetricsHandler(m *metrics.Service) gin.HandlerFunc {
	return gin.WrapH(m.Handler())
}
