package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PersonRole представляет роль клиента в системе
type PersonRole string

const (
	RoleAdmin PersonRole = "admin" // Администратор проката
	RoleUser  PersonRole = "user"  // Обычный клиент
)

// MinPasswordLength - минимальная длина пароля при регистрации
const MinPasswordLength = 6

// Person - клиент, который бронирует машины
// Заказы ссылаются на него по ID, поиск по имени пользователя
type Person struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Никогда не возвращаем в JSON
	Role         PersonRole `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NormalizeUsername убирает пробелы по краям имени пользователя
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// IsAdmin проверяет, является ли клиент администратором
func (p *Person) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Validate проверяет корректность данных клиента
func (p *Person) Validate() error {
	p.Username = NormalizeUsername(p.Username)
	if p.Username == "" || len(p.Username) > 64 {
		return ErrInvalidUsername
	}
	if p.PasswordHash == "" {
		return ErrInvalidPassword
	}
	if p.Role != RoleAdmin && p.Role != RoleUser {
		return ErrInvalidRole
	}
	return nil
}
