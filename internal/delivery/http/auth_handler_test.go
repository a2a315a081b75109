package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/carrental/internal/delivery/http/middleware"
	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/jwt"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/pkg/validator"
	"github.com/frontandrew/carrental/internal/usecase/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService - мок для auth service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*domain.Person, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

func (m *MockAuthService) Token(ctx context.Context, req *auth.TokenRequest) (*auth.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenResponse), args.Error(1)
}

func (m *MockAuthService) GetPersonByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Person), args.Error(1)
}

// doJSON выполняет запрос к handler и разбирает JSON ответ
func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}, ctx context.Context) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if ctx != nil {
		req = req.WithContext(ctx)
	}
	rr := httptest.NewRecorder()

	handler(rr, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

func withClaims(personID uuid.UUID, username string, role domain.PersonRole) context.Context {
	return middleware.WithPersonClaims(context.Background(), &jwt.Claims{
		PersonID: personID,
		Username: username,
		Role:     role,
	})
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockAuthService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:        "успешная регистрация",
			requestBody: auth.RegisterRequest{Username: "alice", Password: "secret1"},
			mockSetup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("*auth.RegisterRequest")).
					Return(&domain.Person{ID: uuid.New(), Username: "alice", Role: domain.RoleUser}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.True(t, resp["success"].(bool))
				data := resp["data"].(map[string]interface{})
				assert.Equal(t, "alice", data["username"])
				assert.NotContains(t, data, "password_hash")
			},
		},
		{
			name:        "клиент уже существует",
			requestBody: auth.RegisterRequest{Username: "alice", Password: "secret1"},
			mockSetup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrPersonAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
				assert.Contains(t, resp["error"].(string), "already exists")
			},
		},
		{
			name:           "короткий пароль",
			requestBody:    auth.RegisterRequest{Username: "alice", Password: "123"},
			mockSetup:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.Equal(t, "password must be at least 6", resp["error"])
			},
		},
		{
			name:           "невалидный JSON",
			requestBody:    "invalid json",
			mockSetup:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				assert.False(t, resp["success"].(bool))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.mockSetup(mockService)
			handler := NewAuthHandler(mockService, validator.New(), logger.NewNoop())

			rr, resp := doJSON(t, handler.Register, http.MethodPost, "/api/v1/auth/register", tt.requestBody, nil)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			tt.checkResponse(t, resp)
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Token(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "успешный вход",
			mockSetup: func(m *MockAuthService) {
				m.On("Token", mock.Anything, &auth.TokenRequest{Username: "alice", Password: "secret1"}).
					Return(&auth.TokenResponse{AccessToken: "token"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "неверный пароль",
			mockSetup: func(m *MockAuthService) {
				m.On("Token", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.mockSetup(mockService)
			handler := NewAuthHandler(mockService, validator.New(), logger.NewNoop())

			rr, _ := doJSON(t, handler.Token, http.MethodPost, "/api/v1/auth/token",
				auth.TokenRequest{Username: "alice", Password: "secret1"}, nil)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_GetMe(t *testing.T) {
	personID := uuid.New()
	mockService := new(MockAuthService)
	mockService.On("GetPersonByID", mock.Anything, personID).
		Return(&domain.Person{ID: personID, Username: "alice", Role: domain.RoleUser}, nil)
	handler := NewAuthHandler(mockService, validator.New(), logger.NewNoop())

	rr, resp := doJSON(t, handler.GetMe, http.MethodGet, "/api/v1/auth/me", nil, withClaims(personID, "alice", domain.RoleUser))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", resp["data"].(map[string]interface{})["username"])

	rr, _ = doJSON(t, handler.GetMe, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
