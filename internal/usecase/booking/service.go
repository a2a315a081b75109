package booking

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/metrics"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
)

// EventPublisher публикует события о созданных бронях
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error
}

// Request - запрос на бронирование
type Request struct {
	Username string
	CarID    uuid.UUID
	Range    domain.DateRange
}

// Service содержит бизнес-логику бронирования
type Service struct {
	personRepo repository.PersonRepository
	carRepo    repository.CarRepository
	transactor repository.BookingTransactor
	publisher  EventPublisher
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewService создает новый экземпляр BookingService
func NewService(
	personRepo repository.PersonRepository,
	carRepo repository.CarRepository,
	transactor repository.BookingTransactor,
	publisher EventPublisher,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		personRepo: personRepo,
		carRepo:    carRepo,
		transactor: transactor,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Book бронирует свободную машину той же модели и компании, что и выбранная.
// Выбранная машина служит только представителем предложения: бронируется первая
// свободная машина группы, и это не обязательно машина с req.CarID.
// Проверка занятости и запись брони выполняются в одной транзакции.
func (s *Service) Book(ctx context.Context, req Request) (order *domain.Order, err error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordBooking(bookingResult(err), time.Since(started))
	}()

	dr, err := domain.NewDateRange(req.Range.From, req.Range.To)
	if err != nil {
		return nil, err
	}

	person, err := s.personRepo.GetByUsername(ctx, domain.NormalizeUsername(req.Username))
	if err != nil {
		s.logger.Warn("Booking rejected: unknown person", map[string]interface{}{
			"username": req.Username,
			"error":    err,
		})
		return nil, err
	}

	car, err := s.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		s.logger.Warn("Booking rejected: unknown car", map[string]interface{}{
			"car_id": req.CarID,
			"error":  err,
		})
		return nil, err
	}

	err = s.transactor.WithinBooking(ctx, func(tx repository.BookingTx) error {
		siblings, err := tx.LockSiblings(ctx, car.ModelID, car.RentalCompanyID)
		if err != nil {
			return err
		}

		free, err := firstFree(ctx, tx, siblings, dr)
		if err != nil {
			return err
		}

		order = &domain.Order{
			PersonID:   person.ID,
			CarID:      free.ID,
			BookedFrom: dr.From,
			BookedTo:   dr.To,
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAllUnitsBooked) {
			s.logger.Warn("Booking rejected: no free units", map[string]interface{}{
				"person_id":   person.ID,
				"car_id":      req.CarID,
				"booked_from": dr.From.Format(domain.DateLayout),
				"booked_to":   dr.To.Format(domain.DateLayout),
			})
		} else {
			s.logger.Error("Booking failed", map[string]interface{}{
				"person_id": person.ID,
				"car_id":    req.CarID,
				"error":     err,
			})
		}
		return nil, err
	}

	s.logger.Info("Order created", map[string]interface{}{
		"order_id":      order.ID,
		"person_id":     order.PersonID,
		"requested_car": req.CarID,
		"booked_car":    order.CarID,
		"booked_from":   dr.From.Format(domain.DateLayout),
		"booked_to":     dr.To.Format(domain.DateLayout),
	})

	// Бронь уже зафиксирована: ошибка публикации только логируется
	if pubErr := s.publisher.PublishOrderCreated(ctx, domain.NewOrderCreatedEvent(order)); pubErr != nil {
		s.logger.Error("Failed to publish order event", map[string]interface{}{
			"order_id": order.ID,
			"error":    pubErr,
		})
	}

	return order, nil
}

// firstFree возвращает первую машину группы без пересекающихся броней
func firstFree(ctx context.Context, tx repository.BookingTx, siblings []*domain.Car, dr domain.DateRange) (*domain.Car, error) {
	if len(siblings) == 0 {
		return nil, domain.ErrCarNotFound
	}

	ids := make([]uuid.UUID, 0, len(siblings))
	for _, c := range siblings {
		ids = append(ids, c.ID)
	}

	orders, err := tx.ListOverlapping(ctx, ids, dr)
	if err != nil {
		return nil, err
	}

	busy := make(map[uuid.UUID]struct{}, len(orders))
	for _, o := range orders {
		if o.ConflictsWith(dr) {
			busy[o.CarID] = struct{}{}
		}
	}

	for _, c := range siblings {
		if _, ok := busy[c.ID]; !ok {
			return c, nil
		}
	}
	return nil, domain.ErrAllUnitsBooked
}

func bookingResult(err error) string {
	switch {
	case err == nil:
		return metrics.BookingCreated
	case domain.IsConflict(err):
		return metrics.BookingConflict
	case domain.IsNotFound(err):
		return metrics.BookingNotFound
	default:
		return metrics.BookingError
	}
}
