package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type personRepository struct {
	db *pgxpool.Pool
}

func NewPersonRepository(db *pgxpool.Pool) repository.PersonRepository {
	return &personRepository{db: db}
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	query := `
		INSERT INTO persons (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	person.ID = uuid.New()
	person.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		person.ID,
		person.Username,
		person.PasswordHash,
		person.Role,
		person.CreatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return domain.ErrPersonAlreadyExists
		}
		return fmt.Errorf("failed to create person: %w", err)
	}

	return nil
}

func (r *personRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM persons
		WHERE id = $1
	`

	return r.scanPerson(r.db.QueryRow(ctx, query, id))
}

func (r *personRepository) GetByUsername(ctx context.Context, username string) (*domain.Person, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM persons
		WHERE username = $1
	`

	return r.scanPerson(r.db.QueryRow(ctx, query, domain.NormalizeUsername(username)))
}

func (r *personRepository) scanPerson(row pgx.Row) (*domain.Person, error) {
	person := &domain.Person{}
	err := row.Scan(
		&person.ID,
		&person.Username,
		&person.PasswordHash,
		&person.Role,
		&person.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, err
	}

	return person, nil
}
