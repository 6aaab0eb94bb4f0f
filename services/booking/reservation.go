package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"regal/models"
	availabilityStore "regal/store/availability"
	"regal/store/googleauth"
	ledgerStore "regal/store/ledger"
	"regal/utils"
)

// slotStartHours maps a time slot to its fixed start hour.
var slotStartHours = map[string]int{
	"morning":   9,
	"afternoon": 12,
	"evening":   17,
}

// slotDuration is the fixed length of every booked slot.
const slotDuration = 3 * time.Hour

// DefaultReservationService records a booking in the ledger sheet and
// blocks the date on the availability calendar, in that order. There is no
// rollback: a ledger row with no calendar hold is reported as a partial
// write and the overall call fails.
type DefaultReservationService struct {
	Ledger       ledgerStore.Store
	Calendar     availabilityStore.Store
	BusinessName string
	Location     *time.Location
	Now          func() time.Time
}

func (s *DefaultReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultReservationService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

// SubmitReservation validates the request and performs the two writes.
// Validation here is the trust boundary; the form gates submission
// client-side but the service re-checks required fields.
func (s *DefaultReservationService) SubmitReservation(ctx context.Context, req models.BookingRequest) error {
	logger := utils.GetLogger()

	if missing := missingFields(req); len(missing) > 0 {
		return NewInvalidRequest("missing required fields: " + strings.Join(missing, ", "))
	}
	start, err := slotStart(req.Date, req.TimeSlot, s.location())
	if err != nil {
		return NewInvalidRequest(err.Error())
	}
	end := start.Add(slotDuration)

	row := models.LedgerRow{Timestamp: s.now(), Request: req}
	if err := s.Ledger.AppendBooking(ctx, row); err != nil {
		if errors.Is(err, googleauth.ErrMissingCredentials) {
			return NewConfigError("server auth missing")
		}
		logger.Error("reservation: ledger append failed", zap.Error(err))
		return NewBackendUnavailable("failed to record booking")
	}

	hold := models.Hold{
		Summary: fmt.Sprintf("%s Event: %s - %s", s.BusinessName, req.EventType, req.ContactName),
		Description: fmt.Sprintf("Guests: %s\nVenue: %s\nPhone: %s\nNote: %s",
			req.GuestTier, req.Venue, req.ContactPhone, req.SpecialRequests),
		Location: req.Venue,
		Start:    start,
		End:      end,
	}
	if err := s.Calendar.CreateHold(ctx, hold); err != nil {
		// The ledger row exists but the date is not blocked. Logged
		// distinctly so operators can reconcile by hand.
		logger.Error("reservation: calendar hold failed after ledger append",
			zap.String("code", CodePartialWrite),
			zap.String("date", req.Date),
			zap.String("contactEmail", req.ContactEmail),
			zap.Error(err))
		return NewPartialWrite("failed to create calendar hold")
	}

	return nil
}

// missingFields returns the required fields absent from the request.
func missingFields(req models.BookingRequest) []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"date", req.Date},
		{"eventType", req.EventType},
		{"guestCount", req.GuestTier},
		{"timeSlot", req.TimeSlot},
		{"contactName", req.ContactName},
		{"contactEmail", req.ContactEmail},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// slotStart computes the event start instant from the date and slot in the
// business timezone.
func slotStart(date, timeSlot string, loc *time.Location) (time.Time, error) {
	hour, ok := slotStartHours[timeSlot]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown time slot %q", timeSlot)
	}
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q", date)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc), nil
}
