package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord - плоская запись для отображения брони клиента
type HistoryRecord struct {
	OrderID           uuid.UUID `json:"order_id"`
	Name              string    `json:"name"`
	Location          string    `json:"location"` // "Страна, Город"
	Price             float64   `json:"price"`
	RentalCompanyName string    `json:"rental_company_name"`
	Seats             int       `json:"seats"`
	FuelConsumption   float64   `json:"fuel_consumption"`
	BookedFrom        time.Time `json:"booked_from"`
	BookedTo          time.Time `json:"booked_to"`
}

// OrderDetails - бронь вместе со всеми связанными данными (результат join)
type OrderDetails struct {
	Order
	ModelName         string
	Seats             int
	FuelConsumption   float64
	Price             float64
	RentalCompanyName string
	CityName          string
	CountryName       string
}

// ToHistoryRecord превращает связанные данные брони в запись истории
func (d *OrderDetails) ToHistoryRecord() HistoryRecord {
	return HistoryRecord{
		OrderID:           d.ID,
		Name:              d.ModelName,
		Location:          ComposeLocation(d.CountryName, d.CityName),
		Price:             d.Price,
		RentalCompanyName: d.RentalCompanyName,
		Seats:             d.Seats,
		FuelConsumption:   d.FuelConsumption,
		BookedFrom:        d.BookedFrom,
		BookedTo:          d.BookedTo,
	}
}
