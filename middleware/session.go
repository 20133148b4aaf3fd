package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventkompass/services/session"
	"eventkompass/utils"
)

// SessionHeader carries the signed session token in both directions.
const SessionHeader = "X-Session-Token"

const sessionIDKey = "sessionID"

// SessionMiddleware resolves the session named by the request's token. A
// missing, invalid or expired token gets a fresh session whose token is
// returned in the response header.
func SessionMiddleware(svc *session.Service, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id string
		if token := c.GetHeader(SessionHeader); token != "" {
			if sub, err := utils.ExtractIDFromToken(token); err == nil {
				id = sub
			} else {
				utils.GetLogger().Debug("Session token rejected", zap.Error(err))
			}
		}

		st, created, err := svc.Resolve(c.Request.Context(), id)
		if err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable, "Session store unavailable", err.Error())
			return
		}

		// Tokens are refreshed on every request so an active session never expires.
		token, err := utils.GenerateToken(st.ID, ttl)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to issue session token", err.Error())
			return
		}
		c.Header(SessionHeader, token)
		if created {
			c.Header("X-Session-Created", "true")
		}

		c.Set(sessionIDKey, st.ID)
		c.Next()
	}
}

// SessionID returns the id stored by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
