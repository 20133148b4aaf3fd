package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventkompass/middleware"
	"eventkompass/utils"
)

// getLogger returns the global logger tagged with the request's session.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger()
	if id := middleware.SessionID(c); id != "" {
		return logger.With(zap.String("session", id))
	}
	return logger
}
