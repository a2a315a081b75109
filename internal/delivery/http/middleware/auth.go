package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/jwt"
)

// contextKey - тип для ключей контекста
type contextKey string

const (
	// PersonClaimsKey - ключ для сохранения claims клиента в контексте
	PersonClaimsKey contextKey = "person_claims"
)

// TokenValidator проверяет access токены
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware проверяет наличие и валидность JWT токена
func AuthMiddleware(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			// Формат: "Bearer <token>"
			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := tokens.ValidateToken(tokenString)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					respondError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := WithPersonClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole проверяет, что клиент имеет одну из указанных ролей
func RequireRole(roles ...domain.PersonRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetPersonClaims(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			respondError(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}

// WithPersonClaims кладет claims клиента в контекст
func WithPersonClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, PersonClaimsKey, claims)
}

// GetPersonClaims извлекает claims клиента из контекста
func GetPersonClaims(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(PersonClaimsKey).(*jwt.Claims)
	return claims, ok
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
