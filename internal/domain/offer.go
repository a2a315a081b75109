package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Offer - продаваемое предложение: одна или несколько взаимозаменяемых свободных машин
// (одна модель, одна компания). Строится на каждый запрос и не хранится.
type Offer struct {
	CarID             uuid.UUID `json:"car_id"` // Представитель группы, по нему потом бронируют
	Name              string    `json:"name"`
	RentalCompanyName string    `json:"rental_company_name"`
	Price             float64   `json:"price"`
	FuelConsumption   float64   `json:"fuel_consumption"`
	Seats             int       `json:"seats"`
	Count             int       `json:"count"`
}

// OfferGroup - все предложения одной модели от разных компаний
// Пагинация поиска идет по группам, а не по отдельным предложениям
type OfferGroup struct {
	Name   string  `json:"name"`
	Offers []Offer `json:"offers"`
}

// SortKey - ключ сортировки результатов поиска
type SortKey int

const (
	SortByPrice  SortKey = iota // price
	SortByName                  // name, затем компания
	SortBySeats                 // seats, затем name, затем компания
	SortByRental                // только название компании
	SortByFuel                  // fuel, затем name, затем компания
)

var sortKeyNames = map[SortKey]string{
	SortByPrice:  "price",
	SortByName:   "name",
	SortBySeats:  "seats",
	SortByRental: "rental",
	SortByFuel:   "fuel",
}

// ParseSortKey разбирает ключ сортировки без учета регистра.
// Неизвестные и пустые значения сортируют по цене.
func ParseSortKey(s string) SortKey {
	name := strings.ToLower(strings.TrimSpace(s))
	for key, keyName := range sortKeyNames {
		if keyName == name {
			return key
		}
	}
	return SortByPrice
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return sortKeyNames[SortByPrice]
}
