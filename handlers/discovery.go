package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventkompass/i18n"
	"eventkompass/middleware"
	"eventkompass/models"
	"eventkompass/services/discovery"
	"eventkompass/services/navigation"
	"eventkompass/services/session"
	"eventkompass/utils"
)

// CategoryInfo is one tile of the category grid.
type CategoryInfo struct {
	Category    models.Category      `json:"category"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Theme       models.CategoryTheme `json:"theme"`
	Path        string               `json:"path"`
}

// DiscoveryResponse is a rendered discovery page. Accepted is false when a
// newer request of the same session superseded this one.
type DiscoveryResponse struct {
	models.DiscoveryView
	Accepted bool `json:"accepted"`
}

type DiscoveryHandler struct {
	Discovery *discovery.Service
	Sessions  *session.Service
}

func NewDiscoveryHandler(svc *discovery.Service) *DiscoveryHandler {
	return &DiscoveryHandler{Discovery: svc, Sessions: svc.Sessions}
}

// language returns the session's language, German when it cannot be read.
func (h *DiscoveryHandler) language(c *gin.Context) models.Language {
	st, err := h.Sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		return models.LanguageDE
	}
	return st.Language
}

// CategoriesHandler lists the categories with theme and localized label.
func (h *DiscoveryHandler) CategoriesHandler(c *gin.Context) {
	lang := h.language(c)
	out := make([]CategoryInfo, 0, len(models.Categories))
	for _, cat := range models.Categories {
		name, desc := i18n.CategoryLabel(lang, cat)
		out = append(out, CategoryInfo{
			Category:    cat,
			Name:        name,
			Description: desc,
			Theme:       cat.Theme(),
			Path:        navigation.DiscoveryPath(cat),
		})
	}
	c.JSON(http.StatusOK, out)
}

// SearchHandler classifies a free-text query and navigates to its category.
func (h *DiscoveryHandler) SearchHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Info("Invalid search request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid search", err.Error())
		return
	}

	resp, err := h.Discovery.Search(c.Request.Context(), middleware.SessionID(c), req.Query)
	if err != nil {
		respondError(c, h.language(c), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DiscoverHandler fetches and parses the events of a category.
func (h *DiscoveryHandler) DiscoverHandler(c *gin.Context) {
	category, ok := models.LookupCategory(c.Param("category"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Unknown category", c.Param("category"))
		return
	}

	view, accepted, err := h.Discovery.Discover(c.Request.Context(), middleware.SessionID(c), category)
	if err != nil {
		respondError(c, h.language(c), err)
		return
	}
	c.JSON(http.StatusOK, DiscoveryResponse{DiscoveryView: view, Accepted: accepted})
}

// CurrentDiscoveryHandler returns the last accepted discovery result.
func (h *DiscoveryHandler) CurrentDiscoveryHandler(c *gin.Context) {
	view, err := h.Discovery.Current(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}
	if view == nil {
		utils.JSONError(c, http.StatusNotFound, "No discovery result", "Open a category first.")
		return
	}
	c.JSON(http.StatusOK, DiscoveryResponse{DiscoveryView: *view, Accepted: true})
}
