package search

import (
	"context"
	"fmt"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/metrics"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
)

// Request - параметры поиска свободных машин
type Request struct {
	CityID     uuid.UUID
	Range      domain.DateRange
	PageNumber int
	PageSize   int
	SortBy     domain.SortKey
	Descending bool
}

// Service ищет свободные машины и собирает из них предложения
type Service struct {
	carRepo   repository.CarRepository
	orderRepo repository.OrderRepository
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewService создает новый экземпляр SearchService
func NewService(
	carRepo repository.CarRepository,
	orderRepo repository.OrderRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		carRepo:   carRepo,
		orderRepo: orderRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

// Search возвращает страницу групп предложений для города и интервала.
// Отсутствие машин не ошибка: возвращается пустая страница.
func (s *Service) Search(ctx context.Context, req Request) ([]domain.OfferGroup, error) {
	dr, err := domain.NewDateRange(req.Range.From, req.Range.To)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordSearch(req.SortBy.String())

	groups, err := s.Available(ctx, req.CityID, dr)
	if err != nil {
		return nil, err
	}

	page := Rank(groups, req.SortBy, req.Descending, req.PageNumber, req.PageSize)

	s.logger.Debug("Search completed", map[string]interface{}{
		"city_id":     req.CityID,
		"sort_by":     req.SortBy.String(),
		"descending":  req.Descending,
		"page_number": req.PageNumber,
		"page_size":   req.PageSize,
		"groups":      len(groups),
		"returned":    len(page),
	})

	return page, nil
}

// Available возвращает все предложения города на интервал без сортировки и пагинации
func (s *Service) Available(ctx context.Context, cityID uuid.UUID, dr domain.DateRange) ([]domain.OfferGroup, error) {
	cars, err := s.carRepo.ListByCity(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	if len(cars) == 0 {
		return []domain.OfferGroup{}, nil
	}

	carIDs := make([]uuid.UUID, 0, len(cars))
	for _, car := range cars {
		carIDs = append(carIDs, car.ID)
	}

	orders, err := s.orderRepo.ListByCarsOverlapping(ctx, carIDs, dr)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return Aggregate(cars, busyCars(orders, dr)), nil
}
