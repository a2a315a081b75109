package repository

import (
	"context"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/google/uuid"
)

// PersonRepository определяет методы для работы с клиентами
type PersonRepository interface {
	// Create создает нового клиента
	Create(ctx context.Context, person *domain.Person) error

	// GetByID возвращает клиента по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)

	// GetByUsername возвращает клиента по имени пользователя
	GetByUsername(ctx context.Context, username string) (*domain.Person, error)
}

// CarRepository определяет методы чтения парка машин
type CarRepository interface {
	// GetByID возвращает машину по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)

	// ListByCity возвращает все машины компаний города вместе с данными модели и компании
	ListByCity(ctx context.Context, cityID uuid.UUID) ([]*domain.CarDetails, error)
}

// OrderRepository определяет методы чтения броней
type OrderRepository interface {
	// GetByID возвращает бронь по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// ListByCar возвращает все брони машины
	ListByCar(ctx context.Context, carID uuid.UUID) ([]*domain.Order, error)

	// ListByCarsOverlapping возвращает брони указанных машин, пересекающиеся с интервалом
	ListByCarsOverlapping(ctx context.Context, carIDs []uuid.UUID, r domain.DateRange) ([]*domain.Order, error)

	// ListDetailsByPerson возвращает брони клиента со всеми связанными данными
	ListDetailsByPerson(ctx context.Context, personID uuid.UUID) ([]*domain.OrderDetails, error)
}

// LocationRepository определяет методы чтения справочника стран и городов
type LocationRepository interface {
	// ListCountries возвращает все страны, отсортированные по названию
	ListCountries(ctx context.Context) ([]*domain.Country, error)

	// ListCitiesByCountry возвращает города страны, отсортированные по названию
	ListCitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]*domain.City, error)
}

// BookingTx - операции, доступные внутри транзакции бронирования
type BookingTx interface {
	// LockSiblings блокирует все машины модели у компании до конца транзакции и возвращает их
	// в порядке добавления в парк. Параллельные бронирования той же группы ждут здесь.
	LockSiblings(ctx context.Context, modelID, rentalCompanyID uuid.UUID) ([]*domain.Car, error)

	// ListOverlapping возвращает брони машин, пересекающиеся с интервалом
	ListOverlapping(ctx context.Context, carIDs []uuid.UUID, r domain.DateRange) ([]*domain.Order, error)

	// CreateOrder сохраняет новую бронь
	CreateOrder(ctx context.Context, order *domain.Order) error
}

// BookingTransactor выполняет функцию атомарно: при ошибке fn ничего не сохраняется
type BookingTransactor interface {
	WithinBooking(ctx context.Context, fn func(tx BookingTx) error) error
}
