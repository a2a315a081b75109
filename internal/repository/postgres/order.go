package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Общий фрагмент условия пересечения: брони не пересекаются, только если одна
// заканчивается строго раньше начала другой (сравнение по DATE, без времени)
const overlapCondition = `car_id = ANY($1::uuid[]) AND NOT (booked_to < $2::date OR $3::date < booked_from)`

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, person_id, car_id, booked_from, booked_to, created_at
		FROM orders
		WHERE id = $1
	`

	order := &domain.Order{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.PersonID,
		&order.CarID,
		&order.BookedFrom,
		&order.BookedTo,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]*domain.Order, error) {
	query := `
		SELECT id, person_id, car_id, booked_from, booked_to, created_at
		FROM orders
		WHERE car_id = $1
		ORDER BY booked_from
	`

	rows, err := r.db.Query(ctx, query, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) ListByCarsOverlapping(ctx context.Context, carIDs []uuid.UUID, dr domain.DateRange) ([]*domain.Order, error) {
	return listOverlapping(ctx, r.db, carIDs, dr)
}

func (r *orderRepository) ListDetailsByPerson(ctx context.Context, personID uuid.UUID) ([]*domain.OrderDetails, error) {
	query := `
		SELECT o.id, o.person_id, o.car_id, o.booked_from, o.booked_to, o.created_at,
		       m.name, m.seats, m.fuel_consumption::float8, c.price::float8,
		       rc.name, ci.name, co.name
		FROM orders o
		JOIN cars c ON c.id = o.car_id
		JOIN car_models m ON m.id = c.model_id
		JOIN rental_companies rc ON rc.id = c.rental_company_id
		JOIN cities ci ON ci.id = rc.city_id
		JOIN countries co ON co.id = ci.country_id
		WHERE o.person_id = $1
		ORDER BY o.booked_from, o.created_at
	`

	rows, err := r.db.Query(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*domain.OrderDetails
	for rows.Next() {
		d := &domain.OrderDetails{}
		err := rows.Scan(
			&d.ID,
			&d.PersonID,
			&d.CarID,
			&d.BookedFrom,
			&d.BookedTo,
			&d.CreatedAt,
			&d.ModelName,
			&d.Seats,
			&d.FuelConsumption,
			&d.Price,
			&d.RentalCompanyName,
			&d.CityName,
			&d.CountryName,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, rows.Err()
}

// querier - общий интерфейс pgxpool.Pool и pgx.Tx для запросов чтения
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listOverlapping(ctx context.Context, q querier, carIDs []uuid.UUID, dr domain.DateRange) ([]*domain.Order, error) {
	if len(carIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, person_id, car_id, booked_from, booked_to, created_at
		FROM orders
		WHERE ` + overlapCondition

	rows, err := q.Query(ctx, query, uuidStrings(carIDs), dr.From, dr.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.PersonID,
			&order.CarID,
			&order.BookedFrom,
			&order.BookedTo,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.String())
	}
	return result
}
