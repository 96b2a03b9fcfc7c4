package http

import (
	"errors"
	"net/http"

	"github.com/ticketzen/boarding-service/internal/http/dto"
	issvc "github.com/ticketzen/boarding-service/internal/service"
)

// MapError переводит доменные/DTO ошибки в HTTP статус и тело APIError
func MapError(err error) (int, APIError) {
	switch {
	// DTO validation
	case errors.Is(err, dto.ErrTokenRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "token required"}
	case errors.Is(err, dto.ErrTicketRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "ticket_id required"}
	case errors.Is(err, dto.ErrAgentRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "agent_id required"}
	case errors.Is(err, dto.ErrTripRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "trip_id required"}
	case errors.Is(err, dto.ErrScansRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "scans required"}
	case errors.Is(err, dto.ErrScannedAtRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "scanned_at required"}

	// Service errors
	case errors.Is(err, issvc.ErrTicketNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "ticket not found"}
	case errors.Is(err, issvc.ErrTripNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "trip not found"}
	case errors.Is(err, issvc.ErrNotConfirmed):
		return http.StatusConflict, APIError{Code: "conflict", Message: "ticket not confirmed"}
	case errors.Is(err, issvc.ErrConflict):
		return http.StatusConflict, APIError{Code: "conflict", Message: "conflicting ticket state"}
	}
	return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
}
