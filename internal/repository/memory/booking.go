package memory

import (
	"context"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
)

type bookingTransactor struct {
	s *Store
}

// NewBookingTransactor возвращает транзактор, сериализующий все бронирования хранилища
func NewBookingTransactor(s *Store) repository.BookingTransactor {
	return &bookingTransactor{s: s}
}

// WithinBooking выполняет fn под общей блокировкой бронирований.
// Созданные в fn брони видны остальным только после успешного завершения.
func (t *bookingTransactor) WithinBooking(ctx context.Context, fn func(tx repository.BookingTx) error) error {
	t.s.bookingMu.Lock()
	defer t.s.bookingMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &bookingTx{s: t.s}
	if err := fn(tx); err != nil {
		return err
	}

	t.s.mu.Lock()
	t.s.orders = append(t.s.orders, tx.pending...)
	t.s.mu.Unlock()
	return nil
}

type bookingTx struct {
	s       *Store
	pending []domain.Order
}

func (tx *bookingTx) LockSiblings(ctx context.Context, modelID, rentalCompanyID uuid.UUID) ([]*domain.Car, error) {
	tx.s.mu.RLock()
	defer tx.s.mu.RUnlock()

	return tx.s.siblings(modelID, rentalCompanyID), nil
}

func (tx *bookingTx) ListOverlapping(ctx context.Context, carIDs []uuid.UUID, r domain.DateRange) ([]*domain.Order, error) {
	tx.s.mu.RLock()
	result := tx.s.overlapping(carIDs, r)
	tx.s.mu.RUnlock()

	ids := make(map[uuid.UUID]struct{}, len(carIDs))
	for _, id := range carIDs {
		ids[id] = struct{}{}
	}
	for _, o := range tx.pending {
		if _, ok := ids[o.CarID]; ok && o.ConflictsWith(r) {
			order := o
			result = append(result, &order)
		}
	}
	return result, nil
}

func (tx *bookingTx) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	tx.pending = append(tx.pending, *order)
	return nil
}
