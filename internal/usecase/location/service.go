package location

import (
	"context"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
)

// Service отдает справочник стран и городов
type Service struct {
	locationRepo repository.LocationRepository
}

// NewService создает новый экземпляр LocationService
func NewService(locationRepo repository.LocationRepository) *Service {
	return &Service{locationRepo: locationRepo}
}

// ListCountries возвращает все страны
func (s *Service) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	return s.locationRepo.ListCountries(ctx)
}

// ListCities возвращает города страны. Неизвестная страна - ErrCountryNotFound.
func (s *Service) ListCities(ctx context.Context, countryID uuid.UUID) ([]*domain.City, error) {
	return s.locationRepo.ListCitiesByCountry(ctx, countryID)
}
