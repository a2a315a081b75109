package middleware

import (
	"net/http"

	"github.com/frontandrew/carrental/internal/pkg/config"
	"github.com/rs/cors"
)

// CORSMiddleware разрешает кросс-доменные запросы с origin из конфигурации
func CORSMiddleware(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
