package location

import (
	"context"
	"testing"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ListCountriesAndCities(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	georgia := store.AddCountry("Georgia")
	store.AddCountry("Armenia")
	store.AddCity(georgia.ID, "Tbilisi")
	store.AddCity(georgia.ID, "Batumi")

	service := NewService(memory.NewLocationRepository(store))

	countries, err := service.ListCountries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, "Armenia", countries[0].Name)
	assert.Equal(t, "Georgia", countries[1].Name)

	cities, err := service.ListCities(ctx, georgia.ID)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Batumi", cities[0].Name)
	assert.Equal(t, "Tbilisi", cities[1].Name)
}

func TestService_ListCities_UnknownCountry(t *testing.T) {
	service := NewService(memory.NewLocationRepository(memory.NewStore()))

	_, err := service.ListCities(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrCountryNotFound)
}
