package memory

import (
	"context"
	"sort"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
)

type personRepository struct {
	s *Store
}

// NewPersonRepository возвращает in-memory репозиторий клиентов
func NewPersonRepository(s *Store) repository.PersonRepository {
	return &personRepository{s: s}
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.persons {
		if p.Username == person.Username {
			return domain.ErrPersonAlreadyExists
		}
	}

	person.ID = uuid.New()
	person.CreatedAt = time.Now()
	r.s.persons = append(r.s.persons, *person)
	return nil
}

func (r *personRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.persons {
		if p.ID == id {
			person := p
			return &person, nil
		}
	}
	return nil, domain.ErrPersonNotFound
}

func (r *personRepository) GetByUsername(ctx context.Context, username string) (*domain.Person, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	username = domain.NormalizeUsername(username)
	for _, p := range r.s.persons {
		if p.Username == username {
			person := p
			return &person, nil
		}
	}
	return nil, domain.ErrPersonNotFound
}

type carRepository struct {
	s *Store
}

// NewCarRepository возвращает in-memory репозиторий машин
func NewCarRepository(s *Store) repository.CarRepository {
	return &carRepository{s: s}
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.findCar(id)
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	return &c, nil
}

func (r *carRepository) ListByCity(ctx context.Context, cityID uuid.UUID) ([]*domain.CarDetails, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.CarDetails, 0)
	for _, c := range r.s.cars {
		company, ok := r.s.companies[c.RentalCompanyID]
		if !ok || company.CityID != cityID {
			continue
		}
		model := r.s.models[c.ModelID]
		result = append(result, &domain.CarDetails{
			Car:               c,
			ModelName:         model.Name,
			Seats:             model.Seats,
			FuelConsumption:   model.FuelConsumption,
			RentalCompanyName: company.Name,
			CityID:            company.CityID,
		})
	}
	return result, nil
}

func (s *Store) siblings(modelID, rentalCompanyID uuid.UUID) []*domain.Car {
	result := make([]*domain.Car, 0)
	for _, c := range s.cars {
		if c.ModelID == modelID && c.RentalCompanyID == rentalCompanyID {
			car := c
			result = append(result, &car)
		}
	}
	return result
}

type orderRepository struct {
	s *Store
}

// NewOrderRepository возвращает in-memory репозиторий броней
func NewOrderRepository(s *Store) repository.OrderRepository {
	return &orderRepository{s: s}
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *orderRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Order, 0)
	for _, o := range r.s.orders {
		if o.CarID == carID {
			order := o
			result = append(result, &order)
		}
	}
	return result, nil
}

func (r *orderRepository) ListByCarsOverlapping(ctx context.Context, carIDs []uuid.UUID, dr domain.DateRange) ([]*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.overlapping(carIDs, dr), nil
}

func (r *orderRepository) ListDetailsByPerson(ctx context.Context, personID uuid.UUID) ([]*domain.OrderDetails, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.OrderDetails, 0)
	for _, o := range r.s.orders {
		if o.PersonID != personID {
			continue
		}
		car, ok := r.s.findCar(o.CarID)
		if !ok {
			continue
		}
		model := r.s.models[car.ModelID]
		company := r.s.companies[car.RentalCompanyID]
		city, _ := r.s.findCity(company.CityID)
		country, _ := r.s.findCountry(city.CountryID)

		result = append(result, &domain.OrderDetails{
			Order:             o,
			ModelName:         model.Name,
			Seats:             model.Seats,
			FuelConsumption:   model.FuelConsumption,
			Price:             car.Price,
			RentalCompanyName: company.Name,
			CityName:          city.Name,
			CountryName:       country.Name,
		})
	}
	return result, nil
}

type locationRepository struct {
	s *Store
}

// NewLocationRepository возвращает in-memory справочник стран и городов
func NewLocationRepository(s *Store) repository.LocationRepository {
	return &locationRepository{s: s}
}

func (r *locationRepository) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Country, 0, len(r.s.countries))
	for _, c := range r.s.countries {
		country := c
		result = append(result, &country)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *locationRepository) ListCitiesByCountry(ctx context.Context, countryID uuid.UUID) ([]*domain.City, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.findCountry(countryID); !ok {
		return nil, domain.ErrCountryNotFound
	}

	result := make([]*domain.City, 0)
	for _, c := range r.s.cities {
		if c.CountryID == countryID {
			city := c
			result = append(result, &city)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
