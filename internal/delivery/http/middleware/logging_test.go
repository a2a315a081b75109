package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/carrental/internal/metrics"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func loggerNoop() logger.Logger {
	return logger.NewNoop()
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Use(LoggingMiddleware(loggerNoop()))
	r.Get("/countries/{id}/cities", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/countries/"+string(rune('a'+i))+"/cities", nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}

	count, err := testutil.GatherAndCount(reg, "carrental_http_requests_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
