package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты бронирования (значения label result)
const (
	BookingCreated  = "created"
	BookingConflict = "conflict"
	BookingNotFound = "not_found"
	BookingError    = "error"
)

// Metrics содержит метрики сервиса проката
type Metrics struct {
	searches        *prometheus.CounterVec
	bookings        *prometheus.CounterVec
	bookingDuration prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New создает метрики в глобальном registry
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в переданном registry.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		searches: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "carrental_searches_total",
			Help: "Total number of offer searches by sort key",
		}, []string{"sort_by"}),
		bookings: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "carrental_bookings_total",
			Help: "Total number of booking attempts by result",
		}, []string{"result"}),
		bookingDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "carrental_booking_duration_seconds",
			Help:    "Duration of booking transactions in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}),
		httpRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "carrental_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "carrental_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordSearch увеличивает счетчик поисков
func (m *Metrics) RecordSearch(sortBy string) {
	m.searches.WithLabelValues(sortBy).Inc()
}

// RecordBooking учитывает попытку бронирования и ее длительность
func (m *Metrics) RecordBooking(result string, duration time.Duration) {
	m.bookings.WithLabelValues(result).Inc()
	m.bookingDuration.Observe(duration.Seconds())
}

// RecordHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, fmt.Sprint(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
