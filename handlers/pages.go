package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventkompass/i18n"
	"eventkompass/middleware"
	"eventkompass/models"
	"eventkompass/services/pages"
	"eventkompass/services/session"
	"eventkompass/utils"
)

type PagesHandler struct {
	Grievances *pages.GrievanceService
	Sessions   *session.Service
}

func NewPagesHandler(grievances *pages.GrievanceService, sessions *session.Service) *PagesHandler {
	return &PagesHandler{Grievances: grievances, Sessions: sessions}
}

func (h *PagesHandler) language(c *gin.Context) models.Language {
	st, err := h.Sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		return models.LanguageDE
	}
	return st.Language
}

// TranslationsHandler returns the translation table of a language.
func TranslationsHandler(c *gin.Context) {
	lang := models.Language(c.Param("lang"))
	if !lang.Valid() {
		utils.JSONError(c, http.StatusNotFound, "Unknown language", c.Param("lang"))
		return
	}
	c.JSON(http.StatusOK, i18n.For(lang))
}

// PageHandler returns a localized informational page.
func (h *PagesHandler) PageHandler(c *gin.Context) {
	page, ok := pages.Get(c.Param("page"), h.language(c))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Unknown page", c.Param("page"))
		return
	}
	c.JSON(http.StatusOK, page)
}

// GrievanceHandler accepts the contact form.
func (h *PagesHandler) GrievanceHandler(c *gin.Context) {
	var req pages.GrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid grievance", err.Error())
		return
	}
	receipt := h.Grievances.Submit(c.Request.Context(), middleware.SessionID(c), req, h.language(c))
	c.JSON(http.StatusCreated, receipt)
}
