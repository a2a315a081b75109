package http

import (
	"context"
	"net/http"
	"time"

	"github.com/frontandrew/carrental/internal/delivery/http/middleware"
	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/metrics"
	"github.com/frontandrew/carrental/internal/pkg/config"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router содержит все зависимости для HTTP роутера
type Router struct {
	authHandler     *AuthHandler
	carHandler      *CarHandler
	orderHandler    *OrderHandler
	locationHandler *LocationHandler
	tokens          middleware.TokenValidator
	db              Pinger
	metrics         *metrics.Metrics
	metricsHandler  http.Handler
	config          *config.Config
	logger          logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	authHandler *AuthHandler,
	carHandler *CarHandler,
	orderHandler *OrderHandler,
	locationHandler *LocationHandler,
	tokens middleware.TokenValidator,
	db Pinger,
	metrics *metrics.Metrics,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		authHandler:     authHandler,
		carHandler:      carHandler,
		orderHandler:    orderHandler,
		locationHandler: locationHandler,
		tokens:          tokens,
		db:              db,
		metrics:         metrics,
		metricsHandler:  promhttp.Handler(),
		config:          config,
		logger:          logger,
	}
}

// WithMetricsHandler подменяет обработчик /metrics (например, handler своего registry)
func (rt *Router) WithMetricsHandler(h http.Handler) *Router {
	rt.metricsHandler = h
	return rt
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.MetricsMiddleware(rt.metrics))
	r.Use(middleware.CORSMiddleware(rt.config.CORS))

	r.Get("/health", rt.health)
	r.Method(http.MethodGet, "/metrics", rt.metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные маршруты
		r.Post("/auth/register", rt.authHandler.Register)
		r.Post("/auth/token", rt.authHandler.Token)

		r.Get("/countries", rt.locationHandler.ListCountries)
		r.Get("/countries/{id}/cities", rt.locationHandler.ListCities)

		r.Post("/cars/search", rt.carHandler.Search)

		// Требуют аутентификации
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokens))

			r.Get("/auth/me", rt.authHandler.GetMe)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", rt.orderHandler.CreateOrder)
				r.Get("/me", rt.orderHandler.GetMyOrders)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Get("/persons/{username}/orders", rt.orderHandler.GetPersonOrders)
			})
		})
	})

	return r
}

// health проверяет подключение к БД
// GET /health
func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if rt.db != nil {
		if err := rt.db.Ping(ctx); err != nil {
			rt.logger.Warn("Health check failed", map[string]interface{}{
				"error": err,
			})
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
