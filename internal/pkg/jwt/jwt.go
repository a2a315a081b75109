package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims содержит payload JWT токена
type Claims struct {
	PersonID uuid.UUID         `json:"person_id"`
	Username string            `json:"username"`
	Role     domain.PersonRole `json:"role"`
	jwt.RegisteredClaims
}

// AccessToken - выданный токен и момент его истечения
type AccessToken struct {
	Token     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenService управляет созданием и валидацией JWT токенов
type TokenService struct {
	secretKey    []byte
	accessExpiry time.Duration
	issuer       string
	now          func() time.Time
}

// NewTokenService создает новый сервис для работы с токенами
func NewTokenService(secretKey string, accessExpiry time.Duration, issuer string) *TokenService {
	return &TokenService{
		secretKey:    []byte(secretKey),
		accessExpiry: accessExpiry,
		issuer:       issuer,
		now:          time.Now,
	}
}

// GenerateAccessToken выпускает access токен для клиента
func (ts *TokenService) GenerateAccessToken(person *domain.Person) (*AccessToken, error) {
	now := ts.now()
	expiresAt := now.Add(ts.accessExpiry)

	claims := &Claims{
		PersonID: person.ID,
		Username: person.Username,
		Role:     person.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   person.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ts.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken валидирует JWT токен и возвращает claims
func (ts *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secretKey, nil
	},
		jwt.WithIssuer(ts.issuer),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
