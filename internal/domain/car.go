package domain

import (
	"time"

	"github.com/google/uuid"
)

// Car - одна физическая машина, атомарная единица бронирования
// Принадлежит ровно одной прокатной компании и одной модели, после создания не меняется
type Car struct {
	ID              uuid.UUID `json:"id"`
	ModelID         uuid.UUID `json:"model_id"`
	RentalCompanyID uuid.UUID `json:"rental_company_id"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
}

// CarModel - модель машины, общая для многих экземпляров
type CarModel struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Seats           int       `json:"seats"`
	FuelConsumption float64   `json:"fuel_consumption"`
}

// RentalCompany - прокатная компания в конкретном городе
type RentalCompany struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	CityID uuid.UUID `json:"city_id"`
}

// CarDetails - машина вместе с данными модели и компании (результат join)
type CarDetails struct {
	Car
	ModelName         string    `json:"model_name"`
	Seats             int       `json:"seats"`
	FuelConsumption   float64   `json:"fuel_consumption"`
	RentalCompanyName string    `json:"rental_company_name"`
	CityID            uuid.UUID `json:"city_id"`
}

// IsSiblingOf проверяет, что машины взаимозаменяемы (та же модель у той же компании)
func (c *Car) IsSiblingOf(other *Car) bool {
	return c.ModelID == other.ModelID && c.RentalCompanyID == other.RentalCompanyID
}
