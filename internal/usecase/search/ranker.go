package search

import (
	"cmp"
	"slices"

	"github.com/frontandrew/carrental/internal/domain"
)

type offerComparator func(a, b domain.Offer) int

// comparators - фиксированное соответствие ключа сортировки и функции сравнения.
// Составные ключи задают полный порядок: при равенстве основного поля
// сравниваются название модели и компании.
var comparators = map[domain.SortKey]offerComparator{
	domain.SortByPrice: func(a, b domain.Offer) int {
		return cmp.Compare(a.Price, b.Price)
	},
	domain.SortByName: func(a, b domain.Offer) int {
		return cmp.Or(
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.RentalCompanyName, b.RentalCompanyName),
		)
	},
	domain.SortBySeats: func(a, b domain.Offer) int {
		return cmp.Or(
			cmp.Compare(a.Seats, b.Seats),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.RentalCompanyName, b.RentalCompanyName),
		)
	},
	domain.SortByRental: func(a, b domain.Offer) int {
		return cmp.Compare(a.RentalCompanyName, b.RentalCompanyName)
	},
	domain.SortByFuel: func(a, b domain.Offer) int {
		return cmp.Or(
			cmp.Compare(a.FuelConsumption, b.FuelConsumption),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.RentalCompanyName, b.RentalCompanyName),
		)
	},
}

func comparatorFor(key domain.SortKey, descending bool) offerComparator {
	compare, ok := comparators[key]
	if !ok {
		compare = comparators[domain.SortByPrice]
	}
	if !descending {
		return compare
	}
	return func(a, b domain.Offer) int {
		return compare(b, a)
	}
}

// Rank сортирует предложения внутри каждой группы, затем группы по их первому предложению,
// и возвращает страницу групп. Некорректные параметры страницы дают пустой результат.
// Входной срез не изменяется.
func Rank(groups []domain.OfferGroup, key domain.SortKey, descending bool, pageNumber, pageSize int) []domain.OfferGroup {
	result := make([]domain.OfferGroup, 0)
	if pageNumber < 0 || pageSize <= 0 {
		return result
	}

	compare := comparatorFor(key, descending)

	sorted := make([]domain.OfferGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Offers) == 0 {
			continue
		}
		offers := slices.Clone(g.Offers)
		slices.SortStableFunc(offers, compare)
		sorted = append(sorted, domain.OfferGroup{Name: g.Name, Offers: offers})
	}

	slices.SortStableFunc(sorted, func(a, b domain.OfferGroup) int {
		return compare(a.Offers[0], b.Offers[0])
	})

	if len(sorted) == 0 || pageNumber > (len(sorted)-1)/pageSize {
		return result
	}

	start := pageNumber * pageSize
	end := start + min(pageSize, len(sorted)-start)
	return append(result, sorted[start:end]...)
}
