package availability

import (
	"context"

	"regal/models"
)

// Store abstracts the remote availability calendar.
type Store interface {
	// ListEvents returns the starts of all events inside the window,
	// ordered by start time.
	ListEvents(ctx context.Context, window models.DateWindow) ([]models.EventStart, error)
	// CreateHold writes a calendar event blocking the hold's date.
	CreateHold(ctx context.Context, hold models.Hold) error
}
