package weather

import (
	"context"

	"github.com/gottomy2/departures/internal/observability"
	"go.uber.org/zap"
)

// Cache memoizes temperatures keyed by "city-YYYY-MM-DD". Only successful
// provider fetches are stored, so a failed lookup never poisons the key.
type Cache interface {
	GetTemperature(ctx context.Context, key string) (float64, bool, error)
	SetTemperature(ctx context.Context, key string, temp float64) error
}

// Service resolves a temperature for a (city, date) pair through the cache.
// Every failure path degrades to a miss; callers treat the absent value as
// "leave the temperature unset" rather than an error.
type Service struct {
	provider Provider
	cache    Cache
	logger   *zap.Logger
}

func NewService(provider Provider, cache Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cache: cache, logger: logger}
}

func (s *Service) GetTemperature(ctx context.Context, city, date string) (float64, bool) {
	key := city + "-" + date

	if s.cache != nil {
		if temp, ok, err := s.cache.GetTemperature(ctx, key); err == nil && ok {
			observability.WeatherCacheTotal.WithLabelValues("hit").Inc()
			return temp, true
		} else if err != nil {
			s.logger.Warn("weather cache read failed", zap.String("key", key), zap.Error(err))
		}
	}
	observability.WeatherCacheTotal.WithLabelValues("miss").Inc()

	temp, err := s.provider.FetchTemperature(ctx, city)
	if err != nil {
		s.logger.Warn("weather lookup failed", zap.String("city", city), zap.Error(err))
		return 0, false
	}

	if s.cache != nil {
		if err := s.cache.SetTemperature(ctx, key, temp); err != nil {
			s.logger.Warn("weather cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return temp, true
}
