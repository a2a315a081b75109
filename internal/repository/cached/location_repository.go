package cached

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/pkg/redis"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
)

// KeyPrefix - общий префикс всех ключей справочника в кэше
const KeyPrefix = "location:"

const (
	countriesCacheKey  = KeyPrefix + "countries"
	citiesCachePrefix  = KeyPrefix + "cities:"
	defaultLocationTTL = 1 * time.Hour
)

// Cache - операции кэша, нужные репозиторию (реализуется *redis.Client)
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// LocationRepository добавляет кэширование к справочнику стран и городов.
// Кэшируются только справочные данные: парк машин и брони всегда читаются из БД.
type LocationRepository struct {
	repo   repository.LocationRepository
	cache  Cache
	ttl    time.Duration
	logger logger.Logger
}

// NewLocationRepository создает новый кэшируемый репозиторий справочника
func NewLocationRepository(repo repository.LocationRepository, cache Cache, ttl time.Duration, log logger.Logger) *LocationRepository {
	if ttl <= 0 {
		ttl = defaultLocationTTL
	}
	return &LocationRepository{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// ListCountries возвращает страны (с кэшированием)
func (r *LocationRepository) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	var countries []*domain.Country
	if r.load(ctx, countriesCacheKey, &countries) {
		return countries, nil
	}

	countries, err := r.repo.ListCountries(ctx)
	if err != nil {
		return nil, err
	}

	r.store(ctx, countriesCacheKey, countries)
	return countries, nil
}

// ListCitiesByCountry возвращает города страны (с кэшированием).
// Ошибка "страна не найдена" не кэшируется.
func (r *LocationRepository) ListCitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]*domain.City, error) {
	key := citiesCachePrefix + countryID.String()

	var cities []*domain.City
	if r.load(ctx, key, &cities) {
		return cities, nil
	}

	cities, err := r.repo.ListCitiesByCountry(ctx, countryID)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, cities)
	return cities, nil
}

// load читает значение из кэша; любые ошибки кэша означают промах
func (r *LocationRepository) load(ctx context.Context, key string, dst interface{}) bool {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			r.logger.Warn("Location cache read failed", map[string]interface{}{
				"key":   key,
				"error": err,
			})
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warn("Location cache entry is corrupted", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return false
	}
	return true
}

// store пишет значение в кэш; ошибка записи не критична
func (r *LocationRepository) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("Location cache write failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
}
