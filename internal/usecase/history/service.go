package history

import (
	"context"
	"fmt"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/repository"
)

// Service отдает историю броней клиента
type Service struct {
	personRepo repository.PersonRepository
	orderRepo  repository.OrderRepository
	logger     logger.Logger
}

// NewService создает новый экземпляр HistoryService
func NewService(personRepo repository.PersonRepository, orderRepo repository.OrderRepository, logger logger.Logger) *Service {
	return &Service{
		personRepo: personRepo,
		orderRepo:  orderRepo,
		logger:     logger,
	}
}

// ListByUsername возвращает брони клиента в виде плоских записей
func (s *Service) ListByUsername(ctx context.Context, username string) ([]domain.HistoryRecord, error) {
	person, err := s.personRepo.GetByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}

	details, err := s.orderRepo.ListDetailsByPerson(ctx, person.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	records := make([]domain.HistoryRecord, 0, len(details))
	for _, d := range details {
		records = append(records, d.ToHistoryRecord())
	}

	s.logger.Debug("History loaded", map[string]interface{}{
		"person_id": person.ID,
		"orders":    len(records),
	})

	return records, nil
}
