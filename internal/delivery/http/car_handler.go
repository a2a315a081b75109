package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/pkg/validator"
	"github.com/frontandrew/carrental/internal/usecase/search"
	"github.com/google/uuid"
)

// SearchService - поиск свободных машин
type SearchService interface {
	Search(ctx context.Context, req search.Request) ([]domain.OfferGroup, error)
}

// SearchRequest - тело запроса поиска
type SearchRequest struct {
	CityID     string `json:"city_id" validate:"required,uuid"`
	BookedFrom string `json:"booked_from" validate:"required,date"`
	BookedTo   string `json:"booked_to" validate:"required,date"`
	PageNumber int    `json:"page_number"`
	PageSize   *int   `json:"page_size,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	Descending bool   `json:"descending"`
}

// CarHandler обрабатывает поиск машин
type CarHandler struct {
	searchService   SearchService
	validator       *validator.Validator
	logger          logger.Logger
	defaultPageSize int
	maxPageSize     int
}

// NewCarHandler создает новый handler
func NewCarHandler(
	searchService SearchService,
	validator *validator.Validator,
	logger logger.Logger,
	defaultPageSize, maxPageSize int,
) *CarHandler {
	return &CarHandler{
		searchService:   searchService,
		validator:       validator,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// Search возвращает страницу предложений, сгруппированных по модели
// POST /api/v1/cars/search
func (h *CarHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	dr, err := domain.ParseDateRange(req.BookedFrom, req.BookedTo)
	if err != nil {
		respondDomainError(w, h.logger, err, "search cars")
		return
	}

	groups, err := h.searchService.Search(r.Context(), search.Request{
		CityID:     uuid.MustParse(req.CityID),
		Range:      dr,
		PageNumber: req.PageNumber,
		PageSize:   h.pageSize(req.PageSize),
		SortBy:     domain.ParseSortKey(req.SortBy),
		Descending: req.Descending,
	})
	if err != nil {
		respondDomainError(w, h.logger, err, "search cars")
		return
	}

	respondData(w, http.StatusOK, groups)
}

// pageSize подставляет размер по умолчанию и ограничивает максимальный.
// Ноль и отрицательные значения передаются как есть: поиск вернет пустую страницу.
func (h *CarHandler) pageSize(requested *int) int {
	if requested == nil {
		return h.defaultPageSize
	}
	return min(*requested, h.maxPageSize)
}
