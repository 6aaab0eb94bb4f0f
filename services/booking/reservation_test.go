package booking

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"regal/models"
	"regal/store/googleauth"
)

// fakeLedger is an in-memory ledger.Store.
type fakeLedger struct {
	rows      []models.LedgerRow
	appendErr error
	menuRows  [][]string
}

func (f *fakeLedger) AppendBooking(ctx context.Context, row models.LedgerRow) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeLedger) ReadMenuRows(ctx context.Context) ([][]string, error) {
	return f.menuRows, nil
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		Date:         "2025-06-20",
		EventType:    "wedding",
		GuestTier:    "medium",
		TimeSlot:     "evening",
		ContactName:  "Ada",
		ContactEmail: "ada@x.com",
	}
}

func reservationWith(ledger *fakeLedger, cal *fakeCalendarStore) *DefaultReservationService {
	return &DefaultReservationService{
		Ledger:       ledger,
		Calendar:     cal,
		BusinessName: "RegAl",
		Location:     time.UTC,
		Now:          func() time.Time { return testNow },
	}
}

func TestSubmitReservationWritesLedgerAndHold(t *testing.T) {
	ledger := &fakeLedger{}
	cal := &fakeCalendarStore{}
	svc := reservationWith(ledger, cal)

	if err := svc.SubmitReservation(context.Background(), validRequest()); err != nil {
		t.Fatal(err)
	}

	if len(ledger.rows) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(ledger.rows))
	}
	values := ledger.rows[0].Values()
	want := []interface{}{
		testNow.UTC().Format(time.RFC3339),
		"2025-06-20", "wedding", "medium", "evening", "",
		"Ada", "ada@x.com", "", "",
	}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("ledger row = %v, want %v", values, want)
	}

	if len(cal.holds) != 1 {
		t.Fatalf("holds = %d, want 1", len(cal.holds))
	}
	hold := cal.holds[0]
	if got := hold.Start.Format("2006-01-02T15:04:05"); got != "2025-06-20T17:00:00" {
		t.Errorf("hold start = %s", got)
	}
	if got := hold.End.Format("2006-01-02T15:04:05"); got != "2025-06-20T20:00:00" {
		t.Errorf("hold end = %s", got)
	}
	if hold.Summary != "RegAl Event: wedding - Ada" {
		t.Errorf("hold summary = %q", hold.Summary)
	}
}

func TestSubmitReservationMorningAndAfternoonSlots(t *testing.T) {
	cases := map[string]string{
		"morning":   "2025-06-20T09:00:00",
		"afternoon": "2025-06-20T12:00:00",
	}
	for slot, wantStart := range cases {
		cal := &fakeCalendarStore{}
		svc := reservationWith(&fakeLedger{}, cal)
		req := validRequest()
		req.TimeSlot = slot
		if err := svc.SubmitReservation(context.Background(), req); err != nil {
			t.Fatalf("%s: %v", slot, err)
		}
		if got := cal.holds[0].Start.Format("2006-01-02T15:04:05"); got != wantStart {
			t.Errorf("%s start = %s, want %s", slot, got, wantStart)
		}
		if cal.holds[0].End.Sub(cal.holds[0].Start) != 3*time.Hour {
			t.Errorf("%s: hold is not 3 hours", slot)
		}
	}
}

func TestSubmitReservationValidation(t *testing.T) {
	ledger := &fakeLedger{}
	cal := &fakeCalendarStore{}
	svc := reservationWith(ledger, cal)

	clear := map[string]func(*models.BookingRequest){
		"date":         func(r *models.BookingRequest) { r.Date = "" },
		"eventType":    func(r *models.BookingRequest) { r.EventType = "" },
		"guestCount":   func(r *models.BookingRequest) { r.GuestTier = "" },
		"timeSlot":     func(r *models.BookingRequest) { r.TimeSlot = " " },
		"contactName":  func(r *models.BookingRequest) { r.ContactName = "" },
		"contactEmail": func(r *models.BookingRequest) { r.ContactEmail = "" },
	}
	for field, mutate := range clear {
		req := validRequest()
		mutate(&req)
		err := svc.SubmitReservation(context.Background(), req)
		if ErrCode(err) != CodeInvalidRequest {
			t.Errorf("missing %s: got %v, want invalidRequest", field, err)
		}
	}

	req := validRequest()
	req.TimeSlot = "midnight"
	if err := svc.SubmitReservation(context.Background(), req); ErrCode(err) != CodeInvalidRequest {
		t.Errorf("unknown slot accepted: %v", err)
	}

	if len(ledger.rows) != 0 || len(cal.holds) != 0 {
		t.Error("invalid requests reached the remote stores")
	}
}

// Ledger succeeds, calendar fails: the call fails overall, the ledger row
// exists, and the date is still reported available afterwards.
func TestSubmitReservationPartialWrite(t *testing.T) {
	ledger := &fakeLedger{}
	cal := &fakeCalendarStore{holdErr: errors.New("insert denied")}
	svc := reservationWith(ledger, cal)

	err := svc.SubmitReservation(context.Background(), validRequest())
	if ErrCode(err) != CodePartialWrite {
		t.Fatalf("expected partialWrite, got %v", err)
	}
	if len(ledger.rows) != 1 {
		t.Fatal("ledger row was not written before the calendar failure")
	}

	avail := availabilityWith(cal)
	snap, err := avail.GetUnavailableDates(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if snap.Contains("2025-06-20") {
		t.Error("date shows booked even though no hold was created")
	}
}

func TestSubmitReservationLedgerFailure(t *testing.T) {
	cal := &fakeCalendarStore{}
	svc := reservationWith(&fakeLedger{appendErr: errors.New("quota")}, cal)

	err := svc.SubmitReservation(context.Background(), validRequest())
	if ErrCode(err) != CodeBackend {
		t.Fatalf("expected backendUnavailable, got %v", err)
	}
	if len(cal.holds) != 0 {
		t.Error("calendar written despite ledger failure")
	}
}

func TestSubmitReservationMissingCredentials(t *testing.T) {
	svc := reservationWith(&fakeLedger{appendErr: googleauth.ErrMissingCredentials}, &fakeCalendarStore{})

	err := svc.SubmitReservation(context.Background(), validRequest())
	if ErrCode(err) != CodeConfig {
		t.Fatalf("expected configError, got %v", err)
	}
}
