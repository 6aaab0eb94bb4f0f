package menu

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"regal/models"
	ledgerStore "regal/store/ledger"
	"regal/utils"
)

// placeholderImage is used when a menu row carries no image path.
const placeholderImage = "/placeholder-logo.png"

// Service returns the cart menu grouped into stations.
type Service interface {
	GetMenu(ctx context.Context) (map[string]models.MenuStation, error)
}

// DefaultMenuService reads menu rows from the booking spreadsheet and
// groups them by category, with a short-lived Redis cache in front.
type DefaultMenuService struct {
	Ledger   ledgerStore.Store
	Cache    *redis.Client
	CacheTTL time.Duration
}

// GetMenu builds the station map from the sheet rows
// [category, name, description, image], skipping blank rows.
func (s *DefaultMenuService) GetMenu(ctx context.Context) (map[string]models.MenuStation, error) {
	if stations, ok := s.cached(ctx); ok {
		return stations, nil
	}

	rows, err := s.Ledger.ReadMenuRows(ctx)
	if err != nil {
		utils.GetLogger().Error("menu: sheet read failed", zap.Error(err))
		return nil, err
	}

	stations := make(map[string]models.MenuStation)
	for _, row := range rows {
		var category, name, description, image string
		if len(row) > 0 {
			category = row[0]
		}
		if len(row) > 1 {
			name = row[1]
		}
		if len(row) > 2 {
			description = row[2]
		}
		if len(row) > 3 {
			image = row[3]
		}
		if category == "" || name == "" {
			continue
		}
		if image == "" {
			image = placeholderImage
		}

		station, exists := stations[category]
		if !exists {
			station = models.MenuStation{Title: capitalize(category)}
		}
		station.Items = append(station.Items, models.MenuItem{
			Name:        name,
			Description: description,
			Image:       image,
		})
		stations[category] = station
	}

	s.store(ctx, stations)
	return stations, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}

func (s *DefaultMenuService) cached(ctx context.Context) (map[string]models.MenuStation, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, utils.MenuCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var stations map[string]models.MenuStation
	if err := json.Unmarshal([]byte(data), &stations); err != nil {
		return nil, false
	}
	return stations, true
}

func (s *DefaultMenuService) store(ctx context.Context, stations map[string]models.MenuStation) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = utils.MenuCacheTTL
	}
	data, err := json.Marshal(stations)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, utils.MenuCacheKey, data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("menu: cache write failed", zap.Error(err))
	}
}
