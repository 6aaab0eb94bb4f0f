package availability

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"regal/config"
	"regal/models"
	"regal/store/googleauth"
)

// GoogleCalendarStore reads and writes the business availability calendar.
type GoogleCalendarStore struct {
	CalendarID string
}

// NewGoogleCalendarStore builds a store against the configured calendar.
func NewGoogleCalendarStore() *GoogleCalendarStore {
	return &GoogleCalendarStore{CalendarID: config.AppConfig.GoogleCalendarID}
}

func (s *GoogleCalendarStore) service(ctx context.Context) (*calendar.Service, error) {
	conf, err := googleauth.JWTConfig()
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar service: %w", err)
	}
	return svc, nil
}

// ListEvents queries the calendar for events starting inside the window.
// singleEvents expands recurring events so every occurrence is visible;
// ordering by start time keeps results deterministic.
func (s *GoogleCalendarStore) ListEvents(ctx context.Context, window models.DateWindow) ([]models.EventStart, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	res, err := svc.Events.List(s.CalendarID).
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar list failed: %w", err)
	}

	starts := make([]models.EventStart, 0, len(res.Items))
	for _, ev := range res.Items {
		if ev.Start == nil {
			continue
		}
		starts = append(starts, models.EventStart{
			Date:     ev.Start.Date,
			DateTime: ev.Start.DateTime,
		})
	}
	return starts, nil
}

// CreateHold inserts a timed event blocking the reserved slot.
func (s *GoogleCalendarStore) CreateHold(ctx context.Context, hold models.Hold) error {
	svc, err := s.service(ctx)
	if err != nil {
		return err
	}

	event := &calendar.Event{
		Summary:     hold.Summary,
		Description: hold.Description,
		Location:    hold.Location,
		Start:       &calendar.EventDateTime{DateTime: hold.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: hold.End.Format(time.RFC3339)},
	}
	if _, err := svc.Events.Insert(s.CalendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("calendar insert failed: %w", err)
	}
	return nil
}
