package kafka

import (
	"time"

	"github.com/frontandrew/carrental/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	EventTypeOrderCreated EventType = "order.created"
)

// DefaultOrdersTopic - топик событий бронирования по умолчанию
const DefaultOrdersTopic = "carrental.orders"

// HeaderEventType - заголовок сообщения с типом события
const HeaderEventType = "x-event-type"

// OrderEvent - конверт события бронирования
type OrderEvent struct {
	EventType EventType                `json:"event_type"`
	Timestamp time.Time                `json:"timestamp"`
	Order     domain.OrderCreatedEvent `json:"order"`
}

// NewOrderCreated оборачивает событие создания брони
func NewOrderCreated(event domain.OrderCreatedEvent) OrderEvent {
	return OrderEvent{
		EventType: EventTypeOrderCreated,
		Timestamp: time.Now().UTC(),
		Order:     event,
	}
}
