package history

import (
	"context"
	"testing"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, from, to string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(from, to)
	require.NoError(t, err)
	return r
}

func TestService_ListByUsername_TwoCities(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	georgia := store.AddCountry("  Georgia ")
	tbilisi := store.AddCity(georgia.ID, " Tbilisi")
	batumi := store.AddCity(georgia.ID, "Batumi  ")
	sedan := store.AddCarModel("Sedan", 5, 6.5)
	van := store.AddCarModel("Van", 8, 9.1)
	alpha := store.AddRentalCompany(tbilisi.ID, "Alpha")
	beta := store.AddRentalCompany(batumi.ID, "Beta")
	sedanCar := store.AddCars(sedan.ID, alpha.ID, 50, 1)[0]
	vanCar := store.AddCars(van.ID, beta.ID, 80, 1)[0]

	personRepo := memory.NewPersonRepository(store)
	person := &domain.Person{Username: "alice", PasswordHash: "hash", Role: domain.RoleUser}
	require.NoError(t, personRepo.Create(ctx, person))

	first := store.AddOrder(person.ID, sedanCar.ID, mustRange(t, "2026-04-01", "2026-04-03"))
	second := store.AddOrder(person.ID, vanCar.ID, mustRange(t, "2026-05-10", "2026-05-12"))

	service := NewService(personRepo, memory.NewOrderRepository(store), logger.NewNoop())

	records, err := service.ListByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, first.ID, records[0].OrderID)
	assert.Equal(t, "Sedan", records[0].Name)
	assert.Equal(t, "Georgia, Tbilisi", records[0].Location)
	assert.Equal(t, "Alpha", records[0].RentalCompanyName)
	assert.Equal(t, 50.0, records[0].Price)

	assert.Equal(t, second.ID, records[1].OrderID)
	assert.Equal(t, "Georgia, Batumi", records[1].Location)
	assert.Equal(t, 8, records[1].Seats)
	assert.Equal(t, 9.1, records[1].FuelConsumption)
}

func TestService_ListByUsername_Empty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	personRepo := memory.NewPersonRepository(store)
	require.NoError(t, personRepo.Create(ctx, &domain.Person{Username: "bob", PasswordHash: "hash", Role: domain.RoleUser}))

	service := NewService(personRepo, memory.NewOrderRepository(store), logger.NewNoop())

	records, err := service.ListByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestService_ListByUsername_UnknownPerson(t *testing.T) {
	store := memory.NewStore()
	service := NewService(memory.NewPersonRepository(store), memory.NewOrderRepository(store), logger.NewNoop())

	_, err := service.ListByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	assert.True(t, domain.IsNotFound(err))
}
