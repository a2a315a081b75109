package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout - формат дат бронирования во внешних запросах
const DateLayout = "2006-01-02"

// DateRange - интервал бронирования, включительно по обеим границам
// Время суток не учитывается, сравниваются только календарные дни
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewDateRange создает интервал, отбрасывая время суток, и проверяет from <= to
func NewDateRange(from, to time.Time) (DateRange, error) {
	if from.IsZero() || to.IsZero() {
		return DateRange{}, ErrInvalidDateRange
	}
	r := DateRange{From: truncateToDay(from), To: truncateToDay(to)}
	if r.To.Before(r.From) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// ParseDateRange разбирает границы в формате YYYY-MM-DD
func ParseDateRange(from, to string) (DateRange, error) {
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return DateRange{}, ErrInvalidDateRange
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return DateRange{}, ErrInvalidDateRange
	}
	return NewDateRange(f, t)
}

// Overlaps проверяет пересечение двух интервалов по полной дате.
// Интервалы не пересекаются, только если один заканчивается строго раньше начала другого.
func (r DateRange) Overlaps(other DateRange) bool {
	return !(truncateToDay(r.To).Before(truncateToDay(other.From)) ||
		truncateToDay(other.To).Before(truncateToDay(r.From)))
}

// Days возвращает количество календарных дней в интервале
func (r DateRange) Days() int {
	return int(truncateToDay(r.To).Sub(truncateToDay(r.From)).Hours()/24) + 1
}

// Overlaps - свободная функция для проверки конфликта существующей брони с запрошенным интервалом
func Overlaps(existing, candidate DateRange) bool {
	return existing.Overlaps(candidate)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Order - бронь конкретной машины клиентом на интервал дат
// Создается только через бронирование, не изменяется
type Order struct {
	ID         uuid.UUID `json:"id"`
	PersonID   uuid.UUID `json:"person_id"`
	CarID      uuid.UUID `json:"car_id"`
	BookedFrom time.Time `json:"booked_from"`
	BookedTo   time.Time `json:"booked_to"`
	CreatedAt  time.Time `json:"created_at"`
}

// Range возвращает интервал брони
func (o *Order) Range() DateRange {
	return DateRange{From: o.BookedFrom, To: o.BookedTo}
}

// ConflictsWith проверяет, занимает ли бронь машину в запрошенный интервал
func (o *Order) ConflictsWith(r DateRange) bool {
	return Overlaps(o.Range(), r)
}

// Validate проверяет корректность данных брони
func (o *Order) Validate() error {
	if o.PersonID == uuid.Nil || o.CarID == uuid.Nil {
		return ErrValidation
	}
	if _, err := NewDateRange(o.BookedFrom, o.BookedTo); err != nil {
		return err
	}
	return nil
}

// OrderCreatedEvent публикуется после фиксации новой брони
type OrderCreatedEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	PersonID   uuid.UUID `json:"person_id"`
	CarID      uuid.UUID `json:"car_id"`
	BookedFrom string    `json:"booked_from"`
	BookedTo   string    `json:"booked_to"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewOrderCreatedEvent строит событие по созданной брони
func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID,
		PersonID:   o.PersonID,
		CarID:      o.CarID,
		BookedFrom: o.BookedFrom.Format(DateLayout),
		BookedTo:   o.BookedTo.Format(DateLayout),
		CreatedAt:  o.CreatedAt,
	}
}
