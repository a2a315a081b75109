package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost - стоимость хеширования паролей
const DefaultCost = 12

// Hasher хеширует и проверяет пароли с заданной стоимостью bcrypt
type Hasher struct {
	cost int
}

// NewHasher создает hasher; cost вне допустимого диапазона bcrypt заменяется на DefaultCost
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash хеширует пароль
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Check сравнивает хеш с паролем в открытом виде
func (h *Hasher) Check(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
