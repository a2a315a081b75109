package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateRange(t *testing.T, from, to string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(from, to)
	require.NoError(t, err)
	return r
}

func TestLocationRepository_SortedByName(t *testing.T) {
	s := NewStore()
	georgia := s.AddCountry("Georgia")
	s.AddCountry("Armenia")
	s.AddCity(georgia.ID, "Tbilisi")
	s.AddCity(georgia.ID, "Batumi")

	repo := NewLocationRepository(s)
	ctx := context.Background()

	countries, err := repo.ListCountries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "Armenia", countries[0].Name)

	cities, err := repo.ListCitiesByCountry(ctx, georgia.ID)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Batumi", cities[0].Name)

	_, err = repo.ListCitiesByCountry(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCountryNotFound)
}

func TestPersonRepository(t *testing.T) {
	repo := NewPersonRepository(NewStore())
	ctx := context.Background()

	person := &domain.Person{Username: "alice", PasswordHash: "hash", Role: domain.RoleUser}
	require.NoError(t, repo.Create(ctx, person))
	assert.NotEqual(t, uuid.Nil, person.ID)

	err := repo.Create(ctx, &domain.Person{Username: "alice", PasswordHash: "hash", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrPersonAlreadyExists)

	found, err := repo.GetByUsername(ctx, " alice ")
	require.NoError(t, err)
	assert.Equal(t, person.ID, found.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
}

func TestOrderRepository_ListByCarsOverlapping(t *testing.T) {
	s := NewStore()
	country := s.AddCountry("Georgia")
	city := s.AddCity(country.ID, "Tbilisi")
	company := s.AddRentalCompany(city.ID, "Rent")
	model := s.AddCarModel("Sedan", 5, 7.5)
	cars := s.AddCars(model.ID, company.ID, 40, 2)
	personID := uuid.New()

	s.AddOrder(personID, cars[0].ID, dateRange(t, "2024-03-10", "2024-03-15"))
	s.AddOrder(personID, cars[1].ID, dateRange(t, "2024-04-10", "2024-04-15"))

	repo := NewOrderRepository(s)
	ctx := context.Background()

	orders, err := repo.ListByCarsOverlapping(ctx, []uuid.UUID{cars[0].ID, cars[1].ID}, dateRange(t, "2024-03-15", "2024-03-16"))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, cars[0].ID, orders[0].CarID)

	byCar, err := repo.ListByCar(ctx, cars[1].ID)
	require.NoError(t, err)
	require.Len(t, byCar, 1)

	details, err := repo.ListDetailsByPerson(ctx, personID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Georgia, Tbilisi", domain.ComposeLocation(details[0].CountryName, details[0].CityName))
	assert.Equal(t, "Sedan", details[0].ModelName)
}

func TestBookingTransactor_DiscardsPendingOnError(t *testing.T) {
	s := NewStore()
	country := s.AddCountry("Georgia")
	city := s.AddCity(country.ID, "Tbilisi")
	company := s.AddRentalCompany(city.ID, "Rent")
	model := s.AddCarModel("Sedan", 5, 7.5)
	cars := s.AddCars(model.ID, company.ID, 40, 1)
	r := dateRange(t, "2024-03-10", "2024-03-12")
	errBoom := errors.New("boom")

	err := NewBookingTransactor(s).WithinBooking(context.Background(), func(tx repository.BookingTx) error {
		siblings, err := tx.LockSiblings(context.Background(), model.ID, company.ID)
		require.NoError(t, err)
		require.Len(t, siblings, 1)

		order := &domain.Order{PersonID: uuid.New(), CarID: cars[0].ID, BookedFrom: r.From, BookedTo: r.To}
		require.NoError(t, tx.CreateOrder(context.Background(), order))

		// Своя несохраненная бронь уже видна внутри транзакции
		busy, err := tx.ListOverlapping(context.Background(), []uuid.UUID{cars[0].ID}, r)
		require.NoError(t, err)
		assert.Len(t, busy, 1)

		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, s.OrdersCount())
}

func TestBookingTransactor_RejectsInvalidOrder(t *testing.T) {
	s := NewStore()

	err := NewBookingTransactor(s).WithinBooking(context.Background(), func(tx repository.BookingTx) error {
		return tx.CreateOrder(context.Background(), &domain.Order{})
	})

	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, s.OrdersCount())
}
