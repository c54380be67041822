package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"socialhub/internal/service"
)

const internalErrorMessage = "Internal Server Error"

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{Error: message}, statusCode)
}

// WriteJSON - функция для успешных ответов
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Ошибка при записи ответа", "error", err)
	}
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidOperation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteServiceError maps domain errors to their status; anything else is logged
// and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *service.Error
	if errors.As(err, &domainErr) {
		WriteError(w, domainErr.Message, StatusFor(domainErr))
		return
	}

	slog.Error("Внутренняя ошибка", "method", r.Method, "path", r.URL.Path, "error", err)
	WriteError(w, internalErrorMessage, http.StatusInternalServerError)
}
