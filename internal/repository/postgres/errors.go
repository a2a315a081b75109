package postgres

import (
	"errors"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// Коды ошибок PostgreSQL, которые имеют доменный смысл
const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapBookingError превращает нарушение ограничения на пересечение броней в доменный конфликт
func mapBookingError(err error) error {
	switch pgErrorCode(err) {
	case pgExclusionViolation, pgSerializationFailure, pgDeadlockDetected:
		return domain.ErrAllUnitsBooked
	}
	return err
}
