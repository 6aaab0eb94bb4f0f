package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"regal/models"
	"regal/services/booking"
)

type fakeAvailability struct {
	snap        models.AvailabilitySnapshot
	err         error
	invalidated int
}

func (f *fakeAvailability) GetUnavailableDates(ctx context.Context) (models.AvailabilitySnapshot, error) {
	if f.err != nil {
		return models.AvailabilitySnapshot{}, f.err
	}
	return f.snap, nil
}

func (f *fakeAvailability) Invalidate(ctx context.Context) {
	f.invalidated++
}

type fakeReservations struct {
	err error
	got []models.BookingRequest
}

func (f *fakeReservations) SubmitReservation(ctx context.Context, req models.BookingRequest) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, req)
	return nil
}

func bookingRouter(avail *fakeAvailability, res *fakeReservations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(avail, res, zap.NewNop())
	r := gin.New()
	r.GET("/api/booking", h.GetBookedDates)
	r.POST("/api/booking", h.SubmitBooking)
	return r
}

func TestGetBookedDates(t *testing.T) {
	avail := &fakeAvailability{snap: models.AvailabilitySnapshot{
		Dates: []string{"2025-06-05", "2025-06-12"},
	}}
	r := bookingRouter(avail, &fakeReservations{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/booking", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		BookedDates []string `json:"bookedDates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.BookedDates) != 2 || body.BookedDates[0] != "2025-06-05" {
		t.Errorf("bookedDates = %v", body.BookedDates)
	}
}

func TestGetBookedDatesEmptyIsArray(t *testing.T) {
	r := bookingRouter(&fakeAvailability{}, &fakeReservations{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/booking", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"bookedDates":[]`) {
		t.Errorf("empty set not serialized as []: %s", w.Body.String())
	}
}

func TestGetBookedDatesBackendFailure(t *testing.T) {
	avail := &fakeAvailability{err: booking.NewBackendUnavailable("failed to fetch calendar")}
	r := bookingRouter(avail, &fakeReservations{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/booking", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSubmitBooking(t *testing.T) {
	avail := &fakeAvailability{}
	res := &fakeReservations{}
	r := bookingRouter(avail, res)

	payload := `{"date":"2025-06-20","eventType":"wedding","guestCount":"medium",` +
		`"timeSlot":"evening","contactName":"Ada","contactEmail":"ada@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if len(res.got) != 1 || res.got[0].GuestTier != "medium" {
		t.Errorf("service saw %+v", res.got)
	}
	if avail.invalidated != 1 {
		t.Error("snapshot cache not invalidated after success")
	}
}

// The legacy contract collapses every failure to a 500 with a message.
func TestSubmitBookingFailuresAre500(t *testing.T) {
	cases := map[string]error{
		"validation":   booking.NewInvalidRequest("missing required fields: date"),
		"auth":         booking.NewConfigError("server auth missing"),
		"backend":      booking.NewBackendUnavailable("failed to record booking"),
		"partialWrite": booking.NewPartialWrite("failed to create calendar hold"),
	}
	for name, svcErr := range cases {
		avail := &fakeAvailability{}
		r := bookingRouter(avail, &fakeReservations{err: svcErr})

		req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, want 500", name, w.Code)
		}
		if !strings.Contains(w.Body.String(), "error") {
			t.Errorf("%s: body = %s", name, w.Body.String())
		}
		if avail.invalidated != 0 {
			t.Errorf("%s: cache invalidated despite failure", name)
		}
	}
}

func TestSubmitBookingBadJSON(t *testing.T) {
	r := bookingRouter(&fakeAvailability{}, &fakeReservations{})

	req := httptest.NewRequest(http.MethodPost, "/api/booking", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

type fakeSessions struct {
	session *models.FormSession
	err     error
	applied []models.FormEvent
}

func (f *fakeSessions) Create(ctx context.Context) (*models.FormSession, error) {
	return f.session, f.err
}

func (f *fakeSessions) Get(ctx context.Context, id string) (*models.FormSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeSessions) Apply(ctx context.Context, id string, ev models.FormEvent) (*models.FormSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.applied = append(f.applied, ev)
	return f.session, nil
}

func (f *fakeSessions) Submit(ctx context.Context, id string) (*models.FormSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func sessionRouter(sessions *fakeSessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFormSessionHandler(sessions, zap.NewNop())
	h.Now = func() time.Time { return time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC) }
	r := gin.New()
	r.POST("/api/booking/session", h.CreateSession)
	r.GET("/api/booking/session/:sessionID", h.GetSession)
	r.POST("/api/booking/session/:sessionID/events", h.ApplyEvent)
	r.POST("/api/booking/session/:sessionID/submit", h.SubmitSession)
	return r
}

func testSession() *models.FormSession {
	return &models.FormSession{
		SessionID:   "abc",
		State:       models.StateSelectingDateAndType,
		MonthCursor: "2025-06",
		Snapshot:    models.AvailabilitySnapshot{Dates: []string{"2025-06-05"}},
	}
}

func TestSessionRendering(t *testing.T) {
	s := testSession()
	s.GuestTier = "medium"
	r := sessionRouter(&fakeSessions{session: s})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/booking/session/abc", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Session  models.FormSession    `json:"session"`
		Cells    []models.DayCell      `json:"cells"`
		Estimate *models.PriceEstimate `json:"estimate"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Cells) != 30 {
		t.Errorf("cells = %d, want 30 for June", len(body.Cells))
	}
	if body.Cells[4].Status != models.CellBooked {
		t.Errorf("2025-06-05 status = %s, want booked", body.Cells[4].Status)
	}
	if body.Estimate == nil || body.Estimate.MinTotal != 1040 || body.Estimate.MaxTotal != 2000 {
		t.Errorf("estimate = %+v, want 1040-2000", body.Estimate)
	}
}

func TestSessionErrorStatuses(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:            booking.NewSessionNotFound("booking session not found or expired"),
		http.StatusBadRequest:          booking.NewInvalidRequest("unknown field favoriteCheese"),
		http.StatusConflict:            booking.NewInvalidTransition("reset is only available after confirmation"),
		http.StatusInternalServerError: booking.NewBackendUnavailable("failed to store booking session"),
	}
	for want, svcErr := range cases {
		r := sessionRouter(&fakeSessions{err: svcErr})

		req := httptest.NewRequest(http.MethodPost, "/api/booking/session/abc/events",
			strings.NewReader(`{"type":"continue"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != want {
			t.Errorf("%v: status = %d, want %d", svcErr, w.Code, want)
		}
	}
}

func TestApplyEventBadBody(t *testing.T) {
	r := sessionRouter(&fakeSessions{session: testSession()})

	req := httptest.NewRequest(http.MethodPost, "/api/booking/session/abc/events",
		strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateSession(t *testing.T) {
	r := sessionRouter(&fakeSessions{session: testSession()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/booking/session", nil))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
}
