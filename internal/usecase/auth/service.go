package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/hash"
	"github.com/frontandrew/carrental/internal/pkg/jwt"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/repository"
	"github.com/google/uuid"
)

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Username string            `json:"username" validate:"required,max=64"`
	Password string            `json:"password" validate:"required,min=6"`
	Role     domain.PersonRole `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}

// TokenRequest - запрос на выдачу токена
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse - выданный токен
type TokenResponse struct {
	Person      *domain.Person `json:"person"`
	AccessToken string         `json:"access_token"`
	ExpiresAt   string         `json:"expires_at"`
}

// Service содержит бизнес-логику аутентификации
type Service struct {
	personRepo   repository.PersonRepository
	hasher       *hash.Hasher
	tokenService *jwt.TokenService
	logger       logger.Logger
}

// NewService создает новый экземпляр AuthService
func NewService(
	personRepo repository.PersonRepository,
	hasher *hash.Hasher,
	tokenService *jwt.TokenService,
	logger logger.Logger,
) *Service {
	return &Service{
		personRepo:   personRepo,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register регистрирует нового клиента
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*domain.Person, error) {
	username := domain.NormalizeUsername(req.Username)

	s.logger.Info("Registering new person", map[string]interface{}{
		"username": username,
	})

	if len(req.Password) < domain.MinPasswordLength {
		return nil, domain.ErrInvalidPassword
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	person := &domain.Person{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         req.Role,
	}

	// Если роль не указана, устанавливаем по умолчанию "user"
	if person.Role == "" {
		person.Role = domain.RoleUser
	}

	if err := person.Validate(); err != nil {
		return nil, err
	}

	if err := s.personRepo.Create(ctx, person); err != nil {
		if errors.Is(err, domain.ErrPersonAlreadyExists) {
			s.logger.Warn("Person already exists", map[string]interface{}{
				"username": username,
			})
			return nil, err
		}
		s.logger.Error("Failed to create person", map[string]interface{}{
			"error": err,
		})
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	s.logger.Info("Person registered successfully", map[string]interface{}{
		"person_id": person.ID,
		"username":  person.Username,
	})

	person.PasswordHash = ""
	return person, nil
}

// Token проверяет имя и пароль и выдает access токен
func (s *Service) Token(ctx context.Context, req *TokenRequest) (*TokenResponse, error) {
	username := domain.NormalizeUsername(req.Username)

	person, err := s.personRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			s.logger.Warn("Token request failed: person not found", map[string]interface{}{
				"username": username,
			})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	if !s.hasher.Check(person.PasswordHash, req.Password) {
		s.logger.Warn("Token request failed: invalid password", map[string]interface{}{
			"person_id": person.ID,
		})
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.GenerateAccessToken(person)
	if err != nil {
		s.logger.Error("Failed to generate token", map[string]interface{}{
			"error": err,
		})
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	person.PasswordHash = ""

	return &TokenResponse{
		Person:      person,
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// GetPersonByID возвращает клиента по ID
func (s *Service) GetPersonByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	person.PasswordHash = ""
	return person, nil
}
