package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLocationService - мок для location service
type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Country), args.Error(1)
}

func (m *MockLocationService) ListCities(ctx context.Context, countryID uuid.UUID) ([]*domain.City, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.City), args.Error(1)
}

func TestLocationHandler_ListCities(t *testing.T) {
	knownID := uuid.New()
	unknownID := uuid.New()

	tests := []struct {
		name           string
		countryID      string
		expectedStatus int
	}{
		{name: "города страны", countryID: knownID.String(), expectedStatus: http.StatusOK},
		{name: "неизвестная страна", countryID: unknownID.String(), expectedStatus: http.StatusNotFound},
		{name: "неверный ID", countryID: "abc", expectedStatus: http.StatusBadRequest},
	}

	mockService := new(MockLocationService)
	mockService.On("ListCities", mock.Anything, knownID).
		Return([]*domain.City{{ID: uuid.New(), Name: "Tbilisi", CountryID: knownID}}, nil)
	mockService.On("ListCities", mock.Anything, unknownID).Return(nil, domain.ErrCountryNotFound)

	handler := NewLocationHandler(mockService, logger.NewNoop())
	r := chi.NewRouter()
	r.Get("/countries/{id}/cities", handler.ListCities)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/countries/"+tt.countryID+"/cities", nil))
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestLocationHandler_ListCountries(t *testing.T) {
	mockService := new(MockLocationService)
	mockService.On("ListCountries", mock.Anything).Return([]*domain.Country{{ID: uuid.New(), Name: "Georgia"}}, nil)
	handler := NewLocationHandler(mockService, logger.NewNoop())

	rr, resp := doJSON(t, handler.ListCountries, http.MethodGet, "/api/v1/countries", nil, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, resp["data"], 1)
}
