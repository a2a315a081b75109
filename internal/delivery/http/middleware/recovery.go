package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/frontandrew/carrental/internal/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RecoveryMiddleware восстанавливается после panic и возвращает 500 ошибку
func RecoveryMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					log.Error("Panic recovered", map[string]interface{}{
						"panic":      rec,
						"stack":      string(debug.Stack()),
						"request_id": chiMiddleware.GetReqID(r.Context()),
						"method":     r.Method,
						"path":       r.URL.Path,
					})

					respondError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
