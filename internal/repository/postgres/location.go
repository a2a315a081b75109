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

type locationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) repository.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	query := `SELECT id, name FROM countries ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []*domain.Country
	for rows.Next() {
		c := &domain.Country{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}

	return countries, rows.Err()
}

func (r *locationRepository) ListCitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]*domain.City, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT true FROM countries WHERE id = $1`, countryID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCountryNotFound
		}
		return nil, err
	}

	query := `
		SELECT id, name, country_id
		FROM cities
		WHERE country_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, countryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []*domain.City
	for rows.Next() {
		c := &domain.City{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}

	return cities, rows.Err()
}
