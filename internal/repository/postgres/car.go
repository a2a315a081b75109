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

type carRepository struct {
	db *pgxpool.Pool
}

func NewCarRepository(db *pgxpool.Pool) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	query := `
		SELECT id, model_id, rental_company_id, price::float8, created_at
		FROM cars
		WHERE id = $1
	`

	car := &domain.Car{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&car.ID,
		&car.ModelID,
		&car.RentalCompanyID,
		&car.Price,
		&car.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCarNotFound
		}
		return nil, err
	}

	return car, nil
}

func (r *carRepository) ListByCity(ctx context.Context, cityID uuid.UUID) ([]*domain.CarDetails, error) {
	query := `
		SELECT c.id, c.model_id, c.rental_company_id, c.price::float8, c.created_at,
		       m.name, m.seats, m.fuel_consumption::float8, rc.name, rc.city_id
		FROM cars c
		JOIN rental_companies rc ON rc.id = c.rental_company_id
		JOIN car_models m ON m.id = c.model_id
		WHERE rc.city_id = $1
		ORDER BY c.created_at, c.id
	`

	rows, err := r.db.Query(ctx, query, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []*domain.CarDetails
	for rows.Next() {
		car := &domain.CarDetails{}
		err := rows.Scan(
			&car.ID,
			&car.ModelID,
			&car.RentalCompanyID,
			&car.Price,
			&car.CreatedAt,
			&car.ModelName,
			&car.Seats,
			&car.FuelConsumption,
			&car.RentalCompanyName,
			&car.CityID,
		)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}

	return cars, rows.Err()
}

func scanCars(rows pgx.Rows) ([]*domain.Car, error) {
	var cars []*domain.Car
	for rows.Next() {
		car := &domain.Car{}
		err := rows.Scan(
			&car.ID,
			&car.ModelID,
			&car.RentalCompanyID,
			&car.Price,
			&car.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}

	return cars, rows.Err()
}
