package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"regal/models"
	"regal/services/booking"
)

// BookingHandler serves the flattened booking contract the site's form
// client speaks: every failure is a 500 with an error message, success
// carries no payload beyond the flag.
type BookingHandler struct {
	Availability booking.AvailabilityService
	Reservations booking.ReservationService
	Logger       *zap.Logger
}

// NewBookingHandler builds a BookingHandler.
func NewBookingHandler(avail booking.AvailabilityService, res booking.ReservationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Availability: avail, Reservations: res, Logger: logger}
}

// GetBookedDates returns the unavailable dates for the booking window.
func (h *BookingHandler) GetBookedDates(c *gin.Context) {
	snap, err := h.Availability.GetUnavailableDates(c.Request.Context())
	if err != nil {
		h.Logger.Error("booking: availability fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": booking.UserMessage(err)})
		return
	}

	dates := snap.Dates
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"bookedDates": dates})
}

// SubmitBooking records a booking request in the ledger and calendar.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.Reservations.SubmitReservation(c.Request.Context(), req); err != nil {
		h.Logger.Error("booking: submission failed",
			zap.String("code", booking.ErrCode(err)),
			zap.String("date", req.Date),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": booking.UserMessage(err)})
		return
	}

	// The calendar gained a hold; drop the cached snapshot so the next
	// availability read reflects it.
	h.Availability.Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true})
}
