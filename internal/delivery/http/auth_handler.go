package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/carrental/internal/delivery/http/middleware"
	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/pkg/validator"
	"github.com/frontandrew/carrental/internal/usecase/auth"
	"github.com/google/uuid"
)

// AuthService - операции аутентификации, нужные handler
type AuthService interface {
	Register(ctx context.Context, req *auth.RegisterRequest) (*domain.Person, error)
	Token(ctx context.Context, req *auth.TokenRequest) (*auth.TokenResponse, error)
	GetPersonByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)
}

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	authService AuthService
	validator   *validator.Validator
	logger      logger.Logger
}

// NewAuthHandler создает новый handler
func NewAuthHandler(authService AuthService, validator *validator.Validator, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		logger:      logger,
	}
}

// Register обрабатывает регистрацию нового клиента
// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	person, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "register person")
		return
	}

	respondData(w, http.StatusCreated, person)
}

// Token выдает access токен по имени и паролю
// POST /api/v1/auth/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req auth.TokenRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	response, err := h.authService.Token(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "issue token")
		return
	}

	respondData(w, http.StatusOK, response)
}

// GetMe возвращает информацию о текущем клиенте
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetPersonClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	person, err := h.authService.GetPersonByID(r.Context(), claims.PersonID)
	if err != nil {
		respondDomainError(w, h.logger, err, "get person")
		return
	}

	respondData(w, http.StatusOK, person)
}
