package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventkompass/middleware"
	"eventkompass/models"
	"eventkompass/services/auth"
	"eventkompass/services/session"
	"eventkompass/utils"
)

// LoginRequest signs a visitor in. Identifier is an EK- id or an e-mail address.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Name       string `json:"name"`
	Password   string `json:"password"`
}

// RegisterRequest creates a demo account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type AuthHandler struct {
	Auth     auth.AuthService
	Sessions *session.Service
}

func NewAuthHandler(authSvc auth.AuthService, sessions *session.Service) *AuthHandler {
	return &AuthHandler{Auth: authSvc, Sessions: sessions}
}

// LoginHandler signs the session in after the simulated delay.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login request", err.Error())
		return
	}

	user, err := h.Auth.Login(c.Request.Context(), req.Identifier, req.Name, req.Password)
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}

	st, err := h.Sessions.Update(c.Request.Context(), middleware.SessionID(c), func(st *session.State) error {
		st.SetUser(*user)
		return nil
	})
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}

	logger.Info("User signed in", zap.String("user", user.ID))
	c.JSON(http.StatusOK, newSessionView(st))
}

// RegisterHandler creates an account and returns its credentials once.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration", err.Error())
		return
	}

	reg, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}
	c.JSON(http.StatusCreated, reg)
}

// LogoutHandler clears user and bookings together and returns home.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	st, err := h.Sessions.Update(c.Request.Context(), middleware.SessionID(c), func(st *session.State) error {
		st.Logout()
		return nil
	})
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}
	getLogger(c).Info("User signed out")
	c.JSON(http.StatusOK, newSessionView(st))
}
