package models

import "time"

// FormState is the current step of the booking form.
type FormState string

const (
	StateSelectingDateAndType FormState = "selectingDateAndType"
	StateEnteringDetails      FormState = "enteringDetails"
	StateSubmitting           FormState = "submitting"
	StateConfirmed            FormState = "confirmed"
)

// FormSession holds all booking form input between requests. It is persisted
// as JSON in the session cache keyed by SessionID.
type FormSession struct {
	SessionID   string               `json:"sessionId"`
	State       FormState            `json:"state"`
	MonthCursor string               `json:"monthCursor"` // "YYYY-MM"
	Snapshot    AvailabilitySnapshot `json:"snapshot"`
	Fetching    bool                 `json:"fetching"`
	FetchKey    string               `json:"fetchKey"` // month cursor of the latest requested fetch

	SelectedDate      string `json:"selectedDate,omitempty"`
	SelectedEventType string `json:"selectedEventType,omitempty"`
	GuestTier         string `json:"guestTier,omitempty"`
	TimeSlot          string `json:"timeSlot,omitempty"`
	Venue             string `json:"venue,omitempty"`
	ContactName       string `json:"contactName,omitempty"`
	ContactEmail      string `json:"contactEmail,omitempty"`
	ContactPhone      string `json:"contactPhone,omitempty"`
	SpecialRequests   string `json:"specialRequests,omitempty"`

	LastError string    `json:"lastError,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FormEventType identifies a booking form event.
type FormEventType string

const (
	EventSelectDate      FormEventType = "selectDate"
	EventSelectEventType FormEventType = "selectEventType"
	EventNavigateMonth   FormEventType = "navigateMonth"
	EventContinue        FormEventType = "continue"
	EventBack            FormEventType = "back"
	EventSetField        FormEventType = "setField"
	EventReset           FormEventType = "reset"
)

// FormEvent is a single user action applied to a form session.
type FormEvent struct {
	Type      FormEventType `json:"type"`
	Date      string        `json:"date,omitempty"`      // selectDate
	EventType string        `json:"eventType,omitempty"` // selectEventType
	Direction string        `json:"direction,omitempty"` // navigateMonth: "next" | "prev"
	Field     string        `json:"field,omitempty"`     // setField
	Value     string        `json:"value,omitempty"`     // setField
}

// DayCellStatus classifies one calendar cell.
type DayCellStatus string

const (
	CellPast       DayCellStatus = "past"
	CellBooked     DayCellStatus = "booked"
	CellSelectable DayCellStatus = "selectable"
)

// DayCell is one rendered day of the visible month.
type DayCell struct {
	Date     string        `json:"date"`
	Status   DayCellStatus `json:"status"`
	Selected bool          `json:"selected"`
}
