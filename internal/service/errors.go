package service

import "errors"

var (
	ErrTicketNotFound = errors.New("ticket_not_found")
	ErrTripNotFound   = errors.New("trip_not_found")
	ErrNotConfirmed   = errors.New("not_confirmed")
	ErrConflict       = errors.New("conflict")
)
