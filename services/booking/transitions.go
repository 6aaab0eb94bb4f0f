package booking

import (
	"strings"
	"time"

	"regal/models"
)

// The form state machine. Transitions are pure functions from
// (session, event) to a new session so they can be unit-tested without a
// rendering environment or HTTP layer.
//
// Gated actions mirror the form's disabled controls: an event that the UI
// would not accept (clicking a booked date, continuing without a selection)
// is a no-op, not an error. Events that are impossible in the current state
// (editing details while confirmed) are invalid transitions.

// NewFormSession returns a fresh session at the date/type selection step.
// The initial availability fetch is marked in flight.
func NewFormSession(id string, now time.Time) models.FormSession {
	month := MonthOf(now)
	return models.FormSession{
		SessionID:   id,
		State:       models.StateSelectingDateAndType,
		MonthCursor: month,
		FetchKey:    month,
		Fetching:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyEvent applies one form event to a session.
func ApplyEvent(s models.FormSession, ev models.FormEvent, now time.Time) (models.FormSession, error) {
	today := now.Format(DateLayout)

	switch ev.Type {
	case models.EventSelectDate:
		if s.State != models.StateSelectingDateAndType {
			return s, NewInvalidTransition("date selection is only available on the calendar step")
		}
		if _, err := time.Parse(DateLayout, ev.Date); err != nil {
			return s, NewInvalidRequest("bad date " + ev.Date)
		}
		// Cells are non-interactive while a fetch is in flight, and
		// clicks on past or booked dates do nothing.
		if s.Fetching || !strings.HasPrefix(ev.Date, s.MonthCursor) {
			return s, nil
		}
		if classifyDate(ev.Date, today, s.Snapshot) != models.CellSelectable {
			return s, nil
		}
		s.SelectedDate = ev.Date
		s.UpdatedAt = now
		return s, nil

	case models.EventSelectEventType:
		if s.State != models.StateSelectingDateAndType {
			return s, NewInvalidTransition("event type selection is only available on the calendar step")
		}
		if strings.TrimSpace(ev.EventType) == "" {
			return s, NewInvalidRequest("eventType is required")
		}
		s.SelectedEventType = ev.EventType
		s.UpdatedAt = now
		return s, nil

	case models.EventNavigateMonth:
		if s.State != models.StateSelectingDateAndType {
			return s, NewInvalidTransition("month navigation is only available on the calendar step")
		}
		var delta int
		switch ev.Direction {
		case "next":
			delta = 1
		case "prev":
			// Browsing into the past is disallowed.
			if s.MonthCursor <= MonthOf(now) {
				return s, nil
			}
			delta = -1
		default:
			return s, NewInvalidRequest("direction must be \"next\" or \"prev\"")
		}
		cursor, err := shiftMonth(s.MonthCursor, delta)
		if err != nil {
			return s, NewInvalidRequest(err.Error())
		}
		s.MonthCursor = cursor
		s.SelectedDate = ""
		s.Fetching = true
		s.FetchKey = cursor
		s.UpdatedAt = now
		return s, nil

	case models.EventContinue:
		if s.State != models.StateSelectingDateAndType {
			return s, NewInvalidTransition("continue is only available on the calendar step")
		}
		if s.SelectedDate == "" || s.SelectedEventType == "" {
			return s, nil
		}
		s.State = models.StateEnteringDetails
		s.UpdatedAt = now
		return s, nil

	case models.EventBack:
		if s.State != models.StateEnteringDetails {
			return s, NewInvalidTransition("back is only available on the details step")
		}
		s.State = models.StateSelectingDateAndType
		s.UpdatedAt = now
		return s, nil

	case models.EventSetField:
		if s.State != models.StateEnteringDetails {
			return s, NewInvalidTransition("details can only be edited on the details step")
		}
		if err := setField(&s, ev.Field, ev.Value); err != nil {
			return s, err
		}
		s.UpdatedAt = now
		return s, nil

	case models.EventReset:
		if s.State != models.StateConfirmed {
			return s, NewInvalidTransition("reset is only available after confirmation")
		}
		fresh := NewFormSession(s.SessionID, now)
		fresh.CreatedAt = s.CreatedAt
		// The snapshot survives the reset; it was refreshed on confirmation.
		fresh.Snapshot = s.Snapshot
		fresh.Fetching = false
		return fresh, nil

	default:
		return s, NewInvalidRequest("unknown form event " + string(ev.Type))
	}
}

// setField writes one detail-step field.
func setField(s *models.FormSession, field, value string) error {
	switch field {
	case "guestTier":
		if value != "" {
			if _, ok := TierByID(value); !ok {
				return NewInvalidRequest("unknown guest tier " + value)
			}
		}
		s.GuestTier = value
	case "timeSlot":
		if value != "" {
			if _, ok := slotStartHours[value]; !ok {
				return NewInvalidRequest("unknown time slot " + value)
			}
		}
		s.TimeSlot = value
	case "venue":
		s.Venue = value
	case "contactName":
		s.ContactName = value
	case "contactEmail":
		s.ContactEmail = value
	case "contactPhone":
		s.ContactPhone = value
	case "specialRequests":
		s.SpecialRequests = value
	default:
		return NewInvalidRequest("unknown field " + field)
	}
	return nil
}

// CanSubmit reports whether the submit control is enabled: all required
// fields filled, and the selected date neither booked nor past.
func CanSubmit(s models.FormSession, today string) bool {
	if s.State != models.StateEnteringDetails {
		return false
	}
	for _, v := range []string{
		s.SelectedDate, s.SelectedEventType, s.GuestTier,
		s.TimeSlot, s.ContactName, s.ContactEmail,
	} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return classifyDate(s.SelectedDate, today, s.Snapshot) == models.CellSelectable
}

// BeginSubmit moves an eligible session into the submitting state. While
// submitting, re-entry is blocked. Returns false when the gate is closed.
func BeginSubmit(s models.FormSession, now time.Time) (models.FormSession, bool) {
	today := now.Format(DateLayout)
	if !CanSubmit(s, today) {
		return s, false
	}
	s.State = models.StateSubmitting
	s.LastError = ""
	s.UpdatedAt = now
	return s, true
}

// CompleteSubmit resolves a submission. Success confirms the session;
// failure returns to the details step with the error surfaced and all
// entered fields intact.
func CompleteSubmit(s models.FormSession, errMsg string, now time.Time) models.FormSession {
	if errMsg == "" {
		s.State = models.StateConfirmed
		s.LastError = ""
	} else {
		s.State = models.StateEnteringDetails
		s.LastError = errMsg
	}
	s.UpdatedAt = now
	return s
}

// BuildRequest assembles the reservation payload from a session.
func BuildRequest(s models.FormSession) models.BookingRequest {
	return models.BookingRequest{
		Date:            s.SelectedDate,
		EventType:       s.SelectedEventType,
		GuestTier:       s.GuestTier,
		TimeSlot:        s.TimeSlot,
		Venue:           s.Venue,
		ContactName:     s.ContactName,
		ContactEmail:    s.ContactEmail,
		ContactPhone:    s.ContactPhone,
		SpecialRequests: s.SpecialRequests,
	}
}
