package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventkompass/middleware"
	"eventkompass/models"
	"eventkompass/services/navigation"
	"eventkompass/services/session"
	"eventkompass/utils"
)

// SessionView is the snapshot returned by the session endpoints.
type SessionView struct {
	ID       string          `json:"id"`
	User     *models.User    `json:"user"`
	SignedIn bool            `json:"signedIn"`
	Language models.Language `json:"language"`
	Location string          `json:"location"`
	Path     string          `json:"path"`
	View     navigation.View `json:"view"`
	Bookings int             `json:"bookings"`
}

func newSessionView(st session.State) SessionView {
	view := SessionView{
		ID:       st.ID,
		User:     st.User,
		SignedIn: st.SignedIn(),
		Language: st.Language,
		Location: st.Location,
		Path:     st.Path,
		View:     st.View(),
	}
	if st.Bookings != nil {
		view.Bookings = st.Bookings.Len()
	}
	return view
}

// LanguageRequest selects the UI language.
type LanguageRequest struct {
	Language string `json:"language" binding:"required,lang"`
}

// LocationRequest sets the search location.
type LocationRequest struct {
	Location string `json:"location"`
}

// NavigateRequest asks the dispatcher to resolve a path.
type NavigateRequest struct {
	Path string `json:"path" binding:"required"`
}

type SessionHandler struct {
	Sessions *session.Service
}

func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

// state loads the request's session or writes an error response.
func (h *SessionHandler) state(c *gin.Context) (session.State, bool) {
	st, err := h.Sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return session.State{}, false
	}
	return st, true
}

// GetSessionHandler returns the session snapshot.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	st, ok := h.state(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionView(st))
}

// SetLanguageHandler switches the language to "de" or "en".
func (h *SessionHandler) SetLanguageHandler(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid language", err.Error())
		return
	}

	st, err := h.Sessions.Update(c.Request.Context(), middleware.SessionID(c), func(st *session.State) error {
		return st.SetLanguage(models.Language(req.Language))
	})
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(st))
}

// ToggleLanguageHandler flips between German and English.
func (h *SessionHandler) ToggleLanguageHandler(c *gin.Context) {
	st, err := h.Sessions.Update(c.Request.Context(), middleware.SessionID(c), func(st *session.State) error {
		st.ToggleLanguage()
		return nil
	})
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(st))
}

// SetLocationHandler stores the home search location. Blank input keeps the
// current location.
func (h *SessionHandler) SetLocationHandler(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid location", err.Error())
		return
	}

	changed := false
	st, err := h.Sessions.Update(c.Request.Context(), middleware.SessionID(c), func(st *session.State) error {
		changed = st.SetLocation(req.Location)
		return nil
	})
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}
	if changed {
		getLogger(c).Debug("Search location changed", zap.String("location", st.Location))
	}
	c.JSON(http.StatusOK, newSessionView(st))
}

// NavigateHandler resolves a path into a view and stores it.
func (h *SessionHandler) NavigateHandler(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid navigation", err.Error())
		return
	}

	st, err := h.Sessions.Update(c.Request.Context(), middleware.SessionID(c), func(st *session.State) error {
		st.Navigate(req.Path)
		return nil
	})
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(st))
}
