package models

import "time"

// Константы эмитента: каждый токен несёт фиксированные iss и type,
// по которым кодек отличает посадочный QR от любого другого JWT.
const (
	Issuer    = "TicketZen"
	TokenType = "ticket_qr"
)

// BoardingClaims — полезная нагрузка посадочного QR-токена.
// Поля соответствуют схеме claims в токене; структура неизменяема
// после выпуска (новое состояние билета = новый токен).
type BoardingClaims struct {
	TicketID          string    `json:"ticket_id"`
	TicketNumber      string    `json:"ticket_number"`
	TripID            string    `json:"trip_id"`
	PassengerName     string    `json:"passenger_name"`
	SeatNumber        string    `json:"seat_number"`
	DepartureDatetime time.Time `json:"departure_datetime"`
	DepartureCity     string    `json:"departure_city"`
	ArrivalCity       string    `json:"arrival_city"`
	IssuedAt          time.Time `json:"issued_at"`
	ExpiresAt         time.Time `json:"expires_at"`
}
