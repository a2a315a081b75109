package domain

import (
	"errors"
	"fmt"
)

// Классы ошибок - транспортный слой сопоставляет их со статусами ответа
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation error")
)

// Person errors
var (
	ErrPersonNotFound      = fmt.Errorf("person %w", ErrNotFound)
	ErrPersonAlreadyExists = fmt.Errorf("person already exists: %w", ErrConflict)
	ErrInvalidUsername     = fmt.Errorf("invalid username: %w", ErrValidation)
	ErrInvalidPassword     = fmt.Errorf("invalid password: %w", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("invalid role: %w", ErrValidation)
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Inventory errors
var (
	ErrCarNotFound     = fmt.Errorf("car %w", ErrNotFound)
	ErrCityNotFound    = fmt.Errorf("city %w", ErrNotFound)
	ErrCountryNotFound = fmt.Errorf("country %w", ErrNotFound)
)

// Order errors
var (
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)
	ErrInvalidDateRange = fmt.Errorf("invalid date range: %w", ErrValidation)
	// ErrAllUnitsBooked - на запрошенные даты не осталось свободных машин этой модели у этой компании
	ErrAllUnitsBooked = fmt.Errorf("all such cars are already booked, refresh the page or pick other dates: %w", ErrConflict)
)

// Authorization errors
var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// IsNotFound проверяет, относится ли ошибка к классу NotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict проверяет, относится ли ошибка к классу Conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation проверяет, относится ли ошибка к классу ValidationError
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
