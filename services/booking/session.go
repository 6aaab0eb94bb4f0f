package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"regal/models"
	"regal/utils"
)

// DefaultFormSessionService persists form sessions as JSON in Redis and
// routes availability fetches and submissions through the booking services.
type DefaultFormSessionService struct {
	Availability AvailabilityService
	Reservations ReservationService
	Cache        *redis.Client
	TTL          time.Duration
	Now          func() time.Time
}

func (svc *DefaultFormSessionService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}

func (svc *DefaultFormSessionService) ttl() time.Duration {
	if svc.TTL > 0 {
		return svc.TTL
	}
	return utils.FormSessionTTL
}

// Create starts a new session and runs the initial availability fetch.
func (svc *DefaultFormSessionService) Create(ctx context.Context) (*models.FormSession, error) {
	s := NewFormSession(uuid.New().String(), svc.now())
	if err := svc.save(ctx, s); err != nil {
		return nil, err
	}
	return svc.refreshAvailability(ctx, s.SessionID, s.FetchKey)
}

// Get loads a session by id.
func (svc *DefaultFormSessionService) Get(ctx context.Context, id string) (*models.FormSession, error) {
	s, err := svc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Apply applies one form event. Month navigation triggers a fresh
// availability fetch for the new cursor.
func (svc *DefaultFormSessionService) Apply(ctx context.Context, id string, ev models.FormEvent) (*models.FormSession, error) {
	s, err := svc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := ApplyEvent(s, ev, svc.now())
	if err != nil {
		return nil, err
	}
	if err := svc.save(ctx, next); err != nil {
		return nil, err
	}

	if next.Fetching && next.FetchKey != "" {
		return svc.refreshAvailability(ctx, id, next.FetchKey)
	}
	return &next, nil
}

// Submit runs the gated submission. An ineligible session is returned
// unchanged: pressing a disabled submit control does nothing.
func (svc *DefaultFormSessionService) Submit(ctx context.Context, id string) (*models.FormSession, error) {
	s, err := svc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	submitting, ok := BeginSubmit(s, svc.now())
	if !ok {
		return &s, nil
	}
	if err := svc.save(ctx, submitting); err != nil {
		return nil, err
	}

	var errMsg string
	if err := svc.Reservations.SubmitReservation(ctx, BuildRequest(submitting)); err != nil {
		errMsg = UserMessage(err)
	}

	done := CompleteSubmit(submitting, errMsg, svc.now())
	if err := svc.save(ctx, done); err != nil {
		return nil, err
	}

	if errMsg == "" {
		// Confirmation does not wait on the refetch; the calendar now
		// holds the new event and the snapshot catches up.
		svc.Availability.Invalidate(ctx)
		go func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := svc.refreshAvailability(refreshCtx, id, done.FetchKey); err != nil {
				utils.GetLogger().Warn("form session: post-submit refresh failed",
					zap.String("sessionId", id), zap.Error(err))
			}
		}()
	}
	return &done, nil
}

// refreshAvailability fetches a snapshot for the given fetch key and applies
// it only if the key still matches the session's latest requested fetch, so
// an out-of-order response cannot overwrite a newer one.
func (svc *DefaultFormSessionService) refreshAvailability(ctx context.Context, id, key string) (*models.FormSession, error) {
	snap, fetchErr := svc.Availability.GetUnavailableDates(ctx)

	s, err := svc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.FetchKey != key {
		// A newer fetch supersedes this one; discard the result.
		return &s, nil
	}

	s.Fetching = false
	if fetchErr != nil {
		s.LastError = "could not check availability"
	} else {
		s.Snapshot = snap
		s.LastError = ""
	}
	s.UpdatedAt = svc.now()
	if err := svc.save(ctx, s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (svc *DefaultFormSessionService) load(ctx context.Context, id string) (models.FormSession, error) {
	data, err := svc.Cache.Get(ctx, utils.FormSessionPrefix+id).Result()
	if err != nil {
		return models.FormSession{}, NewSessionNotFound("booking session not found or expired")
	}
	var s models.FormSession
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return models.FormSession{}, NewSessionNotFound("booking session corrupted")
	}
	return s, nil
}

func (svc *DefaultFormSessionService) save(ctx context.Context, s models.FormSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return NewBackendUnavailable("failed to encode booking session")
	}
	if err := svc.Cache.Set(ctx, utils.FormSessionPrefix+s.SessionID, data, svc.ttl()).Err(); err != nil {
		utils.GetLogger().Error("form session: cache write failed",
			zap.String("sessionId", s.SessionID), zap.Error(err))
		return NewBackendUnavailable("failed to store booking session")
	}
	return nil
}
