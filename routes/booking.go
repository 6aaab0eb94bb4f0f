package routes

import (
	"github.com/gin-gonic/gin"

	"regal/handlers"
)

// RegisterBookingRoutes registers all endpoints for the booking workflow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		// Flattened contract used by the site's booking form.
		booking.GET("", hb.GetBookedDates)
		booking.POST("", hb.SubmitBooking)

		// Step-by-step form sessions.
		booking.POST("/session", hb.CreateFormSession)
		booking.GET("/session/:sessionID", hb.GetFormSession)
		booking.POST("/session/:sessionID/events", hb.ApplyFormEvent)
		booking.POST("/session/:sessionID/submit", hb.SubmitFormSession)
	}
}
