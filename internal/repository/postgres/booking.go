package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bookingTransactor struct {
	db *pgxpool.Pool
}

// NewBookingTransactor создает транзактор бронирования поверх пула
func NewBookingTransactor(db *pgxpool.Pool) repository.BookingTransactor {
	return &bookingTransactor{db: db}
}

// WithinBooking открывает транзакцию и фиксирует ее, только если fn завершилась без ошибки.
// Любая ошибка (в том числе отмена контекста) откатывает все записи.
func (t *bookingTransactor) WithinBooking(ctx context.Context, fn func(tx repository.BookingTx) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	// После Commit откат ничего не делает
	defer func() { _ = tx.Rollback(context.Background()) }()

	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if mapped := mapBookingError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	return nil
}

type bookingTx struct {
	tx pgx.Tx
}

func (b *bookingTx) LockSiblings(ctx context.Context, modelID, rentalCompanyID uuid.UUID) ([]*domain.Car, error) {
	// FOR UPDATE на всех машинах группы: второе бронирование той же группы
	// ждет здесь и после фиксации первого перечитывает брони
	query := `
		SELECT id, model_id, rental_company_id, price::float8, created_at
		FROM cars
		WHERE model_id = $1 AND rental_company_id = $2
		ORDER BY created_at, id
		FOR UPDATE
	`

	rows, err := b.tx.Query(ctx, query, modelID, rentalCompanyID)
	if err != nil {
		return nil, mapBookingError(err)
	}
	defer rows.Close()

	return scanCars(rows)
}

func (b *bookingTx) ListOverlapping(ctx context.Context, carIDs []uuid.UUID, dr domain.DateRange) ([]*domain.Order, error) {
	return listOverlapping(ctx, b.tx, carIDs, dr)
}

func (b *bookingTx) CreateOrder(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, person_id, car_id, booked_from, booked_to, created_at)
		VALUES ($1, $2, $3, $4::date, $5::date, $6)
	`

	if err := order.Validate(); err != nil {
		return err
	}
	order.ID = uuid.New()
	order.CreatedAt = time.Now()

	_, err := b.tx.Exec(ctx, query,
		order.ID,
		order.PersonID,
		order.CarID,
		order.BookedFrom,
		order.BookedTo,
		order.CreatedAt,
	)
	if err != nil {
		if mapped := mapBookingError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}
