package models

import "time"

// BookingRequest is the payload submitted by the booking form. GuestTier
// travels as "guestCount" on the wire; existing form clients send the tier
// id under that key.
type BookingRequest struct {
	Date            string `json:"date"`
	EventType       string `json:"eventType"`
	GuestTier       string `json:"guestCount"`
	TimeSlot        string `json:"timeSlot"`
	Venue           string `json:"venue,omitempty"`
	ContactName     string `json:"contactName"`
	ContactEmail    string `json:"contactEmail"`
	ContactPhone    string `json:"contactPhone,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// AvailabilitySnapshot is the set of calendar dates currently holding at
// least one event, sorted ascending. Dates are "YYYY-MM-DD" strings.
type AvailabilitySnapshot struct {
	Dates     []string  `json:"bookedDates"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Contains reports whether the given date string is in the snapshot.
func (s AvailabilitySnapshot) Contains(date string) bool {
	for _, d := range s.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// DateWindow is a half-open [Start, End) time range built at date
// granularity (midnight boundaries).
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// EventStart is the start of a remote calendar event as ingested. Exactly
// one of Date (all-day events) or DateTime (timed events) is set.
type EventStart struct {
	Date     string
	DateTime string
}

// DateString normalizes the start to its literal calendar date. The date
// component is taken from the string the remote store encodes, never by
// reinterpreting the instant in another timezone.
func (e EventStart) DateString() (string, bool) {
	if len(e.Date) >= 10 {
		return e.Date[:10], true
	}
	if len(e.DateTime) >= 10 {
		return e.DateTime[:10], true
	}
	return "", false
}

// Hold is the calendar event created to block a date once a reservation is
// accepted.
type Hold struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// LedgerRow is one appended booking record.
type LedgerRow struct {
	Timestamp time.Time
	Request   BookingRequest
}

// Values returns the row in the fixed ledger column order.
func (r LedgerRow) Values() []interface{} {
	return []interface{}{
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Request.Date,
		r.Request.EventType,
		r.Request.GuestTier,
		r.Request.TimeSlot,
		r.Request.Venue,
		r.Request.ContactName,
		r.Request.ContactEmail,
		r.Request.ContactPhone,
		r.Request.SpecialRequests,
	}
}

// PricingTier is a static pricing bracket keyed by approximate guest count.
type PricingTier struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	PricePerPerson int    `json:"pricePerPerson"`
	MinGuests      int    `json:"minGuests"`
	MaxGuests      int    `json:"maxGuests"`
}

// PriceEstimate is the displayed estimate range for a tier. It is derived
// client-facing data and never validated server-side against a headcount.
type PriceEstimate struct {
	TierID         string `json:"tierId"`
	PricePerPerson int    `json:"pricePerPerson"`
	MinTotal       int    `json:"minTotal"`
	MaxTotal       int    `json:"maxTotal"`
}
