package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Country - страна
type Country struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// City - город, в котором работают прокатные компании
type City struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CountryID uuid.UUID `json:"country_id"`
}

// ComposeLocation собирает строку вида "Страна, Город" без лишних пробелов
func ComposeLocation(country, city string) string {
	return strings.TrimSpace(country) + ", " + strings.TrimSpace(city)
}
