package handlers

import (
	"github.com/gin-gonic/gin"

	"eventkompass/services/session"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions *session.Service

	// Infrastructure endpoints
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc

	// Session endpoints
	GetSessionHandler     gin.HandlerFunc
	SetLanguageHandler    gin.HandlerFunc
	ToggleLanguageHandler gin.HandlerFunc
	SetLocationHandler    gin.HandlerFunc
	NavigateHandler       gin.HandlerFunc

	// Discovery endpoints
	CategoriesHandler       gin.HandlerFunc
	SearchHandler           gin.HandlerFunc
	DiscoverHandler         gin.HandlerFunc
	CurrentDiscoveryHandler gin.HandlerFunc
	AISTTHandler            gin.HandlerFunc

	// Auth endpoints
	LoginHandler    gin.HandlerFunc
	RegisterHandler gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc

	// Profile and booking endpoints
	ProfileHandler       gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	AddBookingHandler    gin.HandlerFunc
	DeleteBookingHandler gin.HandlerFunc
	CalendarHandler      gin.HandlerFunc
	ShareHandler         gin.HandlerFunc

	// Content endpoints
	TranslationsHandler gin.HandlerFunc
	PageHandler         gin.HandlerFunc
	GrievanceHandler    gin.HandlerFunc
}
