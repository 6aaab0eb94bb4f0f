package booking

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"regal/models"
	availabilityStore "regal/store/availability"
	"regal/store/googleauth"
	"regal/utils"
)

// DefaultAvailabilityService reduces remote calendar events to the set of
// unavailable dates, with a short-lived Redis cache in front.
type DefaultAvailabilityService struct {
	Store    availabilityStore.Store
	Cache    *redis.Client
	CacheTTL time.Duration
	Now      func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetUnavailableDates returns the distinct booked dates inside the booking
// window, sorted ascending.
func (s *DefaultAvailabilityService) GetUnavailableDates(ctx context.Context) (models.AvailabilitySnapshot, error) {
	logger := utils.GetLogger()

	if snap, ok := s.cached(ctx); ok {
		return snap, nil
	}

	window := BookingWindow(s.now())
	starts, err := s.Store.ListEvents(ctx, window)
	if err != nil {
		if errors.Is(err, googleauth.ErrMissingCredentials) {
			return models.AvailabilitySnapshot{}, NewConfigError("server auth missing")
		}
		logger.Error("availability: calendar fetch failed", zap.Error(err))
		return models.AvailabilitySnapshot{}, NewBackendUnavailable("failed to fetch calendar")
	}

	seen := make(map[string]struct{}, len(starts))
	dates := make([]string, 0, len(starts))
	for _, start := range starts {
		date, ok := start.DateString()
		if !ok {
			continue
		}
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}
	sort.Strings(dates)

	snap := models.AvailabilitySnapshot{Dates: dates, FetchedAt: s.now()}
	s.store(ctx, snap)
	return snap, nil
}

// Invalidate drops the cached snapshot. Called after a successful
// reservation so the next fetch sees the new hold.
func (s *DefaultAvailabilityService) Invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.AvailabilityCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("availability: cache invalidation failed", zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) cached(ctx context.Context) (models.AvailabilitySnapshot, bool) {
	if s.Cache == nil {
		return models.AvailabilitySnapshot{}, false
	}
	data, err := s.Cache.Get(ctx, utils.AvailabilityCacheKey).Result()
	if err != nil {
		return models.AvailabilitySnapshot{}, false
	}
	var snap models.AvailabilitySnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return models.AvailabilitySnapshot{}, false
	}
	return snap, true
}

func (s *DefaultAvailabilityService) store(ctx context.Context, snap models.AvailabilitySnapshot) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = utils.AvailabilityCacheTTL
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, utils.AvailabilityCacheKey, data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("availability: cache write failed", zap.Error(err))
	}
}
