package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/todoexcellence/todoex/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Not found
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, "TODO_NOT_FOUND", message
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "USER_NOT_FOUND", message

	// Permission errors
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message
	case errors.Is(err, domain.ErrForbiddenField):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message

	// Auth errors
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message

	// Validation errors
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrCategoryRequired),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Default: internal server error
	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
