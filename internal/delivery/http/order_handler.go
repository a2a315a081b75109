package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/carrental/internal/delivery/http/middleware"
	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/pkg/validator"
	"github.com/frontandrew/carrental/internal/usecase/booking"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// BookingService - бронирование машин
type BookingService interface {
	Book(ctx context.Context, req booking.Request) (*domain.Order, error)
}

// HistoryService - история броней
type HistoryService interface {
	ListByUsername(ctx context.Context, username string) ([]domain.HistoryRecord, error)
}

// CreateOrderRequest - тело запроса бронирования
type CreateOrderRequest struct {
	CarID      string `json:"car_id" validate:"required,uuid"`
	BookedFrom string `json:"booked_from" validate:"required,date"`
	BookedTo   string `json:"booked_to" validate:"required,date"`
}

// OrderHandler обрабатывает бронирования и историю
type OrderHandler struct {
	bookingService BookingService
	historyService HistoryService
	validator      *validator.Validator
	logger         logger.Logger
}

// NewOrderHandler создает новый handler
func NewOrderHandler(
	bookingService BookingService,
	historyService HistoryService,
	validator *validator.Validator,
	logger logger.Logger,
) *OrderHandler {
	return &OrderHandler{
		bookingService: bookingService,
		historyService: historyService,
		validator:      validator,
		logger:         logger,
	}
}

// CreateOrder бронирует свободную машину выбранного предложения для текущего клиента
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetPersonClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateOrderRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	dr, err := domain.ParseDateRange(req.BookedFrom, req.BookedTo)
	if err != nil {
		respondDomainError(w, h.logger, err, "create order")
		return
	}

	order, err := h.bookingService.Book(r.Context(), booking.Request{
		Username: claims.Username,
		CarID:    uuid.MustParse(req.CarID),
		Range:    dr,
	})
	if err != nil {
		respondDomainError(w, h.logger, err, "create order")
		return
	}

	respondData(w, http.StatusCreated, order)
}

// GetMyOrders возвращает историю броней текущего клиента
// GET /api/v1/orders/me
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetPersonClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.respondHistory(w, r, claims.Username)
}

// GetPersonOrders возвращает историю броней любого клиента (только admin)
// GET /api/v1/persons/{username}/orders
func (h *OrderHandler) GetPersonOrders(w http.ResponseWriter, r *http.Request) {
	h.respondHistory(w, r, chi.URLParam(r, "username"))
}

func (h *OrderHandler) respondHistory(w http.ResponseWriter, r *http.Request, username string) {
	records, err := h.historyService.ListByUsername(r.Context(), username)
	if err != nil {
		respondDomainError(w, h.logger, err, "get orders")
		return
	}

	respondData(w, http.StatusOK, records)
}
