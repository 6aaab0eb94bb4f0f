package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle carries every registered handler so routes can be wired in
// one place.
type HandlerBundle struct {
	// Legacy booking endpoints (flattened contract).
	GetBookedDates gin.HandlerFunc
	SubmitBooking  gin.HandlerFunc

	// Booking form session endpoints.
	CreateFormSession gin.HandlerFunc
	GetFormSession    gin.HandlerFunc
	ApplyFormEvent    gin.HandlerFunc
	SubmitFormSession gin.HandlerFunc

	// Menu endpoints.
	GetMenu gin.HandlerFunc
}
