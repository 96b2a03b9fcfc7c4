package dto

import (
	"errors"
	"strings"
)

var (
	ErrTokenRequired     = errors.New("token required")
	ErrTicketRequired    = errors.New("ticket_id required")
	ErrAgentRequired     = errors.New("agent_id required")
	ErrTripRequired      = errors.New("trip_id required")
	ErrScansRequired     = errors.New("scans required")
	ErrScannedAtRequired = errors.New("scanned_at required")
)

// Validate проверяет инварианты ScanRequest
func (r ScanRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return ErrTokenRequired
	}
	if strings.TrimSpace(r.TicketID) == "" {
		return ErrTicketRequired
	}
	if strings.TrimSpace(r.AgentID) == "" {
		return ErrAgentRequired
	}
	return nil
}

// Validate проверяет инварианты SyncOfflineRequest
func (r SyncOfflineRequest) Validate() error {
	if strings.TrimSpace(r.TripID) == "" {
		return ErrTripRequired
	}
	if len(r.Scans) == 0 {
		return ErrScansRequired
	}
	for _, s := range r.Scans {
		if strings.TrimSpace(s.Token) == "" {
			return ErrTokenRequired
		}
		if s.ScannedAt.IsZero() {
			return ErrScannedAtRequired
		}
	}
	return nil
}

// Validate проверяет инварианты BulkValidateRequest
func (r BulkValidateRequest) Validate() error {
	if strings.TrimSpace(r.TripID) == "" {
		return ErrTripRequired
	}
	if len(r.Tokens) == 0 {
		return ErrTokenRequired
	}
	return nil
}
