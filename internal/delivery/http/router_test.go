package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/messaging/kafka"
	"github.com/frontandrew/carrental/internal/metrics"
	"github.com/frontandrew/carrental/internal/pkg/config"
	"github.com/frontandrew/carrental/internal/pkg/hash"
	"github.com/frontandrew/carrental/internal/pkg/jwt"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/pkg/validator"
	"github.com/frontandrew/carrental/internal/repository/memory"
	"github.com/frontandrew/carrental/internal/usecase/auth"
	"github.com/frontandrew/carrental/internal/usecase/booking"
	"github.com/frontandrew/carrental/internal/usecase/history"
	"github.com/frontandrew/carrental/internal/usecase/location"
	"github.com/frontandrew/carrental/internal/usecase/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type testServer struct {
	handler http.Handler
	store   *memory.Store
	city    domain.City
}

func newTestServer(t *testing.T, db Pinger) *testServer {
	t.Helper()

	store := memory.NewStore()
	country := store.AddCountry(" Georgia ")
	city := store.AddCity(country.ID, "Tbilisi ")
	alpha := store.AddRentalCompany(city.ID, "Alpha")
	beta := store.AddRentalCompany(city.ID, "Beta")
	sedan := store.AddCarModel("Sedan", 5, 6.5)
	store.AddCars(sedan.ID, alpha.ID, 50, 2)
	store.AddCars(sedan.ID, beta.ID, 40, 1)

	log := logger.NewNoop()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)
	v := validator.New()
	tokens := jwt.NewTokenService("secret", time.Hour, "carrental")

	persons := memory.NewPersonRepository(store)
	cars := memory.NewCarRepository(store)
	orders := memory.NewOrderRepository(store)

	authService := auth.NewService(persons, hash.NewHasher(bcrypt.MinCost), tokens, log)
	searchService := search.NewService(cars, orders, m, log)
	bookingService := booking.NewService(persons, cars, memory.NewBookingTransactor(store), kafka.NoopPublisher{}, m, log)
	historyService := history.NewService(persons, orders, log)
	locationService := location.NewService(memory.NewLocationRepository(store))

	cfg := &config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}

	router := NewRouter(
		NewAuthHandler(authService, v, log),
		NewCarHandler(searchService, v, log, 10, 100),
		NewOrderHandler(bookingService, historyService, v, log),
		NewLocationHandler(locationService, log),
		tokens,
		db,
		m,
		cfg,
		log,
	).WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &testServer{handler: router.Setup(), store: store, city: city}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var resp map[string]interface{}
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr.Code, resp
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()

	code, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)

	code, resp := s.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": username, "password": "secret1",
	})
	require.Equal(t, http.StatusOK, code)
	return resp["data"].(map[string]interface{})["access_token"].(string)
}

func TestRouter_SearchBookAndHistory(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t, "alice")

	searchBody := map[string]interface{}{
		"city_id":     s.city.ID.String(),
		"booked_from": "2026-06-01",
		"booked_to":   "2026-06-03",
		"page_number": 0,
		"page_size":   10,
		"sort_by":     "price",
	}

	code, resp := s.do(t, http.MethodPost, "/api/v1/cars/search", "", searchBody)
	require.Equal(t, http.StatusOK, code)
	groups := resp["data"].([]interface{})
	require.Len(t, groups, 1)
	offers := groups[0].(map[string]interface{})["offers"].([]interface{})
	require.Len(t, offers, 2)
	beta := offers[0].(map[string]interface{})
	alpha := offers[1].(map[string]interface{})
	assert.Equal(t, "Beta", beta["rental_company_name"])
	assert.Equal(t, float64(1), beta["count"])
	assert.Equal(t, "Alpha", alpha["rental_company_name"])
	assert.Equal(t, float64(2), alpha["count"])

	orderBody := map[string]string{
		"car_id":      alpha["car_id"].(string),
		"booked_from": "2026-06-02",
		"booked_to":   "2026-06-05",
	}
	code, _ = s.do(t, http.MethodPost, "/api/v1/orders", token, orderBody)
	require.Equal(t, http.StatusCreated, code)

	code, resp = s.do(t, http.MethodPost, "/api/v1/cars/search", "", searchBody)
	require.Equal(t, http.StatusOK, code)
	offers = resp["data"].([]interface{})[0].(map[string]interface{})["offers"].([]interface{})
	assert.Equal(t, float64(1), offers[1].(map[string]interface{})["count"])

	code, _ = s.do(t, http.MethodPost, "/api/v1/orders", token, orderBody)
	require.Equal(t, http.StatusCreated, code)
	code, resp = s.do(t, http.MethodPost, "/api/v1/orders", token, orderBody)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, resp["error"], "already booked")
	assert.Equal(t, 2, s.store.OrdersCount())

	code, resp = s.do(t, http.MethodGet, "/api/v1/orders/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	records := resp["data"].([]interface{})
	require.Len(t, records, 2)
	assert.Equal(t, "Georgia, Tbilisi", records[0].(map[string]interface{})["location"])
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t, "alice")

	code, _ := s.do(t, http.MethodGet, "/api/v1/orders/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/persons/alice/orders", token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp := s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", resp["data"].(map[string]interface{})["username"])
}

func TestRouter_Health(t *testing.T) {
	healthy := newTestServer(t, pingerFunc(func(context.Context) error { return nil }))
	code, resp := healthy.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp["status"])

	broken := newTestServer(t, pingerFunc(func(context.Context) error { return errors.New("db down") }))
	code, _ = broken.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodGet, "/api/v1/countries", "", nil)

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `carrental_http_requests_total{method="GET",route="/api/v1/countries",status="200"} 1`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cars/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
