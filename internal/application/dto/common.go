package dto

import (
	"net/http"
	"strconv"
)

// ErrorResponse cuerpo de error HTTP: {statusCode, status, message, field}.
type ErrorResponse struct {
	StatusCode string `json:"statusCode"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
}

// NewError construye el cuerpo de error a partir del código HTTP numérico.
func NewError(status int, message, field string) ErrorResponse {
	return ErrorResponse{
		StatusCode: strconv.Itoa(status),
		Status:     http.StatusText(status),
		Message:    message,
		Field:      field,
	}
}
