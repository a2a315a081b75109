package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/carrental/internal/domain"
	"github.com/frontandrew/carrental/internal/pkg/logger"
	"github.com/frontandrew/carrental/internal/pkg/validator"
)

// maxBodyBytes - предельный размер тела запроса
const maxBodyBytes = 1 << 20

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondData отправляет успешный ответ в общем конверте
func respondData(w http.ResponseWriter, code int, data interface{}) {
	respondJSON(w, code, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// decodeAndValidate читает JSON тело и проверяет его по тегам validate.
// При ошибке сам отвечает 400 и возвращает false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validator, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := v.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// errorMessages - тексты для клиента по конкретным доменным ошибкам
var errorMessages = []struct {
	err     error
	message string
}{
	{domain.ErrAllUnitsBooked, "All such cars are already booked, refresh the page or pick other dates"},
	{domain.ErrPersonNotFound, "Person not found"},
	{domain.ErrCarNotFound, "Car not found"},
	{domain.ErrCountryNotFound, "Country not found"},
	{domain.ErrCityNotFound, "City not found"},
	{domain.ErrPersonAlreadyExists, "Person already exists"},
	{domain.ErrInvalidDateRange, "Invalid date range: booked_from must not be after booked_to"},
	{domain.ErrInvalidPassword, "Password must be at least 6 characters"},
	{domain.ErrInvalidUsername, "Invalid username"},
	{domain.ErrInvalidRole, "Invalid role"},
	{domain.ErrInvalidCredentials, "Invalid credentials"},
}

// respondDomainError сопоставляет класс доменной ошибки со статусом ответа.
// Неизвестные ошибки логируются и отдаются как 500 без деталей.
func respondDomainError(w http.ResponseWriter, log logger.Logger, err error, action string) {
	message := ""
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			message = m.message
			break
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, message)
	case domain.IsNotFound(err):
		respondError(w, http.StatusNotFound, fallback(message, "Not found"))
	case domain.IsConflict(err):
		respondError(w, http.StatusConflict, fallback(message, "Conflict"))
	case domain.IsValidation(err):
		respondError(w, http.StatusBadRequest, fallback(message, "Validation error"))
	default:
		log.Error("Failed to "+action, map[string]interface{}{
			"error": err,
		})
		respondError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

func fallback(message, def string) string {
	if message == "" {
		return def
	}
	return message
}
