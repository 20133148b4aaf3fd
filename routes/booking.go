package routes

import (
	"github.com/gin-gonic/gin"

	"eventkompass/handlers"
	"eventkompass/middleware"
)

// RegisterBookingRoutes registers the profile and booking endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/profile", middleware.RequireUser(hb.Sessions), hb.ProfileHandler)
	api.GET("/share", hb.ShareHandler)

	bookings := api.Group("/bookings")
	{
		bookings.GET("", hb.ListBookingsHandler)
		bookings.GET("/calendar.ics", hb.CalendarHandler)
		bookings.POST("", hb.AddBookingHandler)
		bookings.DELETE("/:id", hb.DeleteBookingHandler)
	}
}
