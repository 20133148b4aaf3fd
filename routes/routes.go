package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"eventkompass/config"
	"eventkompass/handlers"
	"eventkompass/middleware"
)

// RegisterSessionRoutes registers the session endpoints.
func RegisterSessionRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	s := api.Group("/session")
	{
		s.GET("", hb.GetSessionHandler)
		s.PUT("/language", hb.SetLanguageHandler)
		s.POST("/language/toggle", hb.ToggleLanguageHandler)
		s.PUT("/location", hb.SetLocationHandler)
		s.POST("/navigate", hb.NavigateHandler)
	}
}

// RegisterDiscoveryRoutes registers search, discovery and speech endpoints.
func RegisterDiscoveryRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/categories", hb.CategoriesHandler)
	api.POST("/search", hb.SearchHandler)
	api.POST("/stt", hb.AISTTHandler)
	api.GET("/discovery/current", hb.CurrentDiscoveryHandler)
	api.GET("/discovery/:category", hb.DiscoverHandler)
}

// RegisterAuthRoutes registers the mock sign-in endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	a := api.Group("/auth")
	{
		a.POST("/login", hb.LoginHandler)
		a.POST("/register", hb.RegisterHandler)
		a.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterContentRoutes registers translations, pages and the grievance form.
func RegisterContentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/i18n/:lang", hb.TranslationsHandler)
	api.GET("/pages/:page", hb.PageHandler)
	api.POST("/grievances", hb.GrievanceHandler)
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", hb.MetricsHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessionTTL time.Duration) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.SessionHeader},
		ExposeHeaders: []string{"Content-Length", middleware.SessionHeader, "X-Session-Created"},
		MaxAge:        12 * time.Hour,
	}
	if origins := config.Origins(); len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	r.Use(cors.New(corsConfig))

	RegisterHealthRoute(r, hb)

	api := r.Group("/api")
	api.Use(middleware.SessionMiddleware(hb.Sessions, sessionTTL))
	RegisterSessionRoutes(api, hb)
	RegisterDiscoveryRoutes(api, hb)
	RegisterAuthRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterContentRoutes(api, hb)
}
