package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventkompass/i18n"
	"eventkompass/services/session"
	"eventkompass/utils"
)

// RequireUser rejects requests whose session has no signed-in user. It must
// run after SessionMiddleware.
func RequireUser(svc *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Get(c.Request.Context(), SessionID(c))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", err.Error())
			return
		}
		if !st.SignedIn() {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", i18n.T(st.Language, "loginRequired"))
			return
		}
		c.Next()
	}
}
