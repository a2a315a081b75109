package middleware

import (
	"net/http"
	"time"

	"github.com/frontandrew/carrental/internal/metrics"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// LoggingMiddleware логирует все HTTP запросы
func LoggingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := map[string]interface{}{
				"request_id":  chiMiddleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
				"bytes":       ww.BytesWritten(),
				"remote_addr": r.RemoteAddr,
			}

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				log.Error("HTTP request", fields)
			case ww.Status() >= http.StatusBadRequest:
				log.Warn("HTTP request", fields)
			default:
				log.Info("HTTP request", fields)
			}
		})
	}
}

// MetricsMiddleware считает запросы по шаблону маршрута chi, а не по фактическому пути,
// чтобы ID в URL не раздували число серий
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.RecordHTTPRequest(r.Method, route, status, time.Since(start))
		})
	}
}
