package apperror

import (
	"errors"
	"net/http"
)

// FieldError carries per-field detail for validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidation(message string, fieldErrors []FieldError) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: message, Status: http.StatusBadRequest, Errors: fieldErrors}
}

func NewAuthentication(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return &AppError{Code: "AUTHENTICATION_ERROR", Message: message, Status: http.StatusUnauthorized}
}

func NewAuthorization(message string) *AppError {
	if message == "" {
		message = "Forbidden"
	}
	return &AppError{Code: "AUTHORIZATION_ERROR", Message: message, Status: http.StatusForbidden}
}

func NewNotFound(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return &AppError{Code: "NOT_FOUND", Message: message, Status: http.StatusNotFound}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: "CONFLICT", Message: message, Status: http.StatusConflict}
}

func NewInternal(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &AppError{Code: "INTERNAL_SERVER_ERROR", Message: message, Status: http.StatusInternalServerError}
}

// Map converts any error to an AppError. Unrecognized errors become a generic
// internal error so implementation detail never leaks to the caller.
func Map(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("")
}
