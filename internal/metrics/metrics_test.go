package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordBooking(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RecordBooking(BookingCreated, 10*time.Millisecond)
	m.RecordBooking(BookingCreated, 20*time.Millisecond)
	m.RecordBooking(BookingConflict, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues(BookingCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues(BookingConflict)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.bookings.WithLabelValues(BookingNotFound)))
}

func TestMetrics_RecordSearch(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RecordSearch("price")
	m.RecordSearch("seats")
	m.RecordSearch("price")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.searches.WithLabelValues("price")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches.WithLabelValues("seats")))
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RecordHTTPRequest("POST", "/api/v1/orders", 201, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/v1/orders", "201")))
}

func TestNewWithRegisterer_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewWithRegisterer(reg)
	second := NewWithRegisterer(reg)

	first.RecordSearch("name")
	assert.Equal(t, 1.0, testutil.ToFloat64(second.searches.WithLabelValues("name")))
}
