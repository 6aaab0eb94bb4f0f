package booking

import (
	"context"

	"regal/models"
)

// AvailabilityService derives the set of unavailable dates from the remote
// availability calendar.
type AvailabilityService interface {
	// GetUnavailableDates returns the distinct booked dates inside the
	// booking window, sorted ascending. A backend failure is an explicit
	// error, never an empty set.
	GetUnavailableDates(ctx context.Context) (models.AvailabilitySnapshot, error)
	// Invalidate drops any cached snapshot so the next read is fresh.
	Invalidate(ctx context.Context)
}

// ReservationService validates and records a booking request against both
// remote stores.
type ReservationService interface {
	SubmitReservation(ctx context.Context, req models.BookingRequest) error
}

// FormSessionService drives the multi-step booking form held server-side.
type FormSessionService interface {
	Create(ctx context.Context) (*models.FormSession, error)
	Get(ctx context.Context, id string) (*models.FormSession, error)
	Apply(ctx context.Context, id string, ev models.FormEvent) (*models.FormSession, error)
	Submit(ctx context.Context, id string) (*models.FormSession, error)
}
