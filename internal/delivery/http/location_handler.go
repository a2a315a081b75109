package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// LocationService - справочник стран и городов
type LocationService interface {
	ListCountries(ctx context.Context) ([]*domain.Country, error)
	ListCities(ctx context.Context, countryID uuid.UUID) ([]*domain.City, error)
}

// LocationHandler обрабатывает запросы справочника
type LocationHandler struct {
	locationService LocationService
	logger          logger.Logger
}

// NewLocationHandler создает новый handler
func NewLocationHandler(locationService LocationService, logger logger.Logger) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		logger:          logger,
	}
}

// ListCountries возвращает все страны
// GET /api/v1/countries
func (h *LocationHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.locationService.ListCountries(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err, "list countries")
		return
	}

	respondData(w, http.StatusOK, countries)
}

// ListCities возвращает города страны
// GET /api/v1/countries/{id}/cities
func (h *LocationHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	countryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid country ID")
		return
	}

	cities, err := h.locationService.ListCities(r.Context(), countryID)
	if err != nil {
		respondDomainError(w, h.logger, err, "list cities")
		return
	}

	respondData(w, http.StatusOK, cities)
}
