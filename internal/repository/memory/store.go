package memory

import (
	"sync"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/google/uuid"
)

// Store - общее in-memory хранилище для локального запуска и тестов.
// Репозитории ниже работают поверх одного Store, как таблицы одной БД.
type Store struct {
	mu sync.RWMutex
	// bookingMu сериализует транзакции бронирования (аналог блокировки строк в PostgreSQL)
	bookingMu sync.Mutex

	countries []domain.Country
	cities    []domain.City
	companies map[uuid.UUID]domain.RentalCompany
	models    map[uuid.UUID]domain.CarModel
	cars      []domain.Car
	orders    []domain.Order
	persons   []domain.Person
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		companies: make(map[uuid.UUID]domain.RentalCompany),
		models:    make(map[uuid.UUID]domain.CarModel),
	}
}

// AddCountry добавляет страну в справочник
func (s *Store) AddCountry(name string) domain.Country {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.Country{ID: uuid.New(), Name: name}
	s.countries = append(s.countries, c)
	return c
}

// AddCity добавляет город страны
func (s *Store) AddCity(countryID uuid.UUID, name string) domain.City {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.City{ID: uuid.New(), Name: name, CountryID: countryID}
	s.cities = append(s.cities, c)
	return c
}

// AddRentalCompany добавляет прокатную компанию в городе
func (s *Store) AddRentalCompany(cityID uuid.UUID, name string) domain.RentalCompany {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.RentalCompany{ID: uuid.New(), Name: name, CityID: cityID}
	s.companies[c.ID] = c
	return c
}

// AddCarModel добавляет модель машины
func (s *Store) AddCarModel(name string, seats int, fuel float64) domain.CarModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := domain.CarModel{ID: uuid.New(), Name: name, Seats: seats, FuelConsumption: fuel}
	s.models[m.ID] = m
	return m
}

// AddCars добавляет count одинаковых машин модели в парк компании
func (s *Store) AddCars(modelID, companyID uuid.UUID, price float64, count int) []domain.Car {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]domain.Car, 0, count)
	for i := 0; i < count; i++ {
		c := domain.Car{
			ID:              uuid.New(),
			ModelID:         modelID,
			RentalCompanyID: companyID,
			Price:           price,
			CreatedAt:       time.Now(),
		}
		s.cars = append(s.cars, c)
		added = append(added, c)
	}
	return added
}

// OrdersCount возвращает количество сохраненных броней
func (s *Store) OrdersCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

func (s *Store) findCar(id uuid.UUID) (domain.Car, bool) {
	for _, c := range s.cars {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Car{}, false
}

func (s *Store) findCity(id uuid.UUID) (domain.City, bool) {
	for _, c := range s.cities {
		if c.ID == id {
			return c, true
		}
	}
	return domain.City{}, false
}

func (s *Store) findCountry(id uuid.UUID) (domain.Country, bool) {
	for _, c := range s.countries {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Country{}, false
}

// overlapping отбирает брони машин из набора, пересекающиеся с интервалом. Вызывать под s.mu.
func (s *Store) overlapping(carIDs []uuid.UUID, r domain.DateRange) []*domain.Order {
	ids := make(map[uuid.UUID]struct{}, len(carIDs))
	for _, id := range carIDs {
		ids[id] = struct{}{}
	}

	result := make([]*domain.Order, 0)
	for _, o := range s.orders {
		if _, ok := ids[o.CarID]; !ok {
			continue
		}
		if o.ConflictsWith(r) {
			order := o
			result = append(result, &order)
		}
	}
	return result
}

// AddOrder сохраняет бронь в обход бронирования (для заполнения тестовых данных)
func (s *Store) AddOrder(personID, carID uuid.UUID, r domain.DateRange) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := domain.Order{
		ID:         uuid.New(),
		PersonID:   personID,
		CarID:      carID,
		BookedFrom: r.From,
		BookedTo:   r.To,
		CreatedAt:  time.Now(),
	}
	s.orders = append(s.orders, o)
	return o
}
