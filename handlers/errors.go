package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventkompass/i18n"
	"eventkompass/models"
	"eventkompass/services/auth"
	"eventkompass/services/booking"
	"eventkompass/services/classifier"
	"eventkompass/services/discovery"
	"eventkompass/services/session"
	"eventkompass/utils"
)

// respondError maps a service error onto the JSON error envelope.
func respondError(c *gin.Context, lang models.Language, err error) {
	var validationErr *booking.ValidationError
	switch {
	case errors.Is(err, booking.ErrLoginRequired):
		utils.JSONError(c, http.StatusUnauthorized, "Login required", i18n.T(lang, "loginRequired"))
	case errors.Is(err, auth.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials", err.Error())
	case errors.Is(err, auth.ErrNoFreeID):
		utils.JSONError(c, http.StatusServiceUnavailable, "Registration closed", err.Error())
	case errors.Is(err, classifier.ErrEmptyQuery):
		utils.JSONError(c, http.StatusBadRequest, "Invalid search", err.Error())
	case errors.Is(err, session.ErrInvalidLanguage):
		utils.JSONError(c, http.StatusBadRequest, "Invalid language", err.Error())
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid event", validationErr.Message)
	case errors.Is(err, discovery.ErrNoDiscovery):
		utils.JSONError(c, http.StatusConflict, "Nothing to book", err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Session not found", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		utils.JSONError(c, http.StatusRequestTimeout, "Request cancelled", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
