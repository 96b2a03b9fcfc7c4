package models

import "time"

// TicketStatus — доменный статус билета (владеет им внешний CRUD-слой,
// здесь только читаем)
type TicketStatus string

const (
	TicketPending   TicketStatus = "pending"
	TicketConfirmed TicketStatus = "confirmed"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

// Ticket — авторитетная запись билета, как её отдаёт CRUD-слой
type Ticket struct {
	ID            string       `json:"id"`
	TicketNumber  string       `json:"ticket_number"`
	TripID        string       `json:"trip_id"`
	PassengerName string       `json:"passenger_name"`
	SeatNumber    string       `json:"seat_number"`
	Status        TicketStatus `json:"status"`
}

// Trip — рейс, к которому привязан билет
type Trip struct {
	ID                string    `json:"id"`
	CompanyID         string    `json:"company_id"`
	DepartureCity     string    `json:"departure_city"`
	ArrivalCity       string    `json:"arrival_city"`
	DepartureDatetime time.Time `json:"departure_datetime"`
	TotalSeats        int       `json:"total_seats"`
}
