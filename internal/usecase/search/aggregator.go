package search

import (
	"github.com/frontandrew/carrental/internal/domain"
	"github.com/google/uuid"
)

// Aggregate сворачивает свободные машины в предложения.
// Машины из busy пропускаются. Остальные группируются по названию модели,
// внутри модели по компании; каждая пара (модель, компания) дает одно предложение
// с количеством машин. Представитель предложения - первая машина пары.
// Порядок групп и предложений соответствует порядку машин во входном списке.
func Aggregate(cars []*domain.CarDetails, busy map[uuid.UUID]struct{}) []domain.OfferGroup {
	type bucketKey struct {
		model   string
		company string
	}

	groups := make([]domain.OfferGroup, 0)
	groupIndex := make(map[string]int)
	offerIndex := make(map[bucketKey]int)

	for _, car := range cars {
		if _, ok := busy[car.ID]; ok {
			continue
		}

		gi, ok := groupIndex[car.ModelName]
		if !ok {
			gi = len(groups)
			groupIndex[car.ModelName] = gi
			groups = append(groups, domain.OfferGroup{Name: car.ModelName})
		}

		key := bucketKey{model: car.ModelName, company: car.RentalCompanyName}
		if oi, ok := offerIndex[key]; ok {
			groups[gi].Offers[oi].Count++
			continue
		}

		offerIndex[key] = len(groups[gi].Offers)
		groups[gi].Offers = append(groups[gi].Offers, domain.Offer{
			CarID:             car.ID,
			Name:              car.ModelName,
			RentalCompanyName: car.RentalCompanyName,
			Price:             car.Price,
			FuelConsumption:   car.FuelConsumption,
			Seats:             car.Seats,
			Count:             1,
		})
	}

	return groups
}

// busyCars возвращает множество машин, у которых есть брони, пересекающиеся с интервалом
func busyCars(orders []*domain.Order, r domain.DateRange) map[uuid.UUID]struct{} {
	busy := make(map[uuid.UUID]struct{}, len(orders))
	for _, o := range orders {
		if o.ConflictsWith(r) {
			busy[o.CarID] = struct{}{}
		}
	}
	return busy
}
