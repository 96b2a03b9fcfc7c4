package models

import "time"

// SnapshotTicket — минимальная проекция билета для офлайн-проверки
type SnapshotTicket struct {
	TicketID      string       `json:"ticket_id"`
	TicketNumber  string       `json:"ticket_number"`
	PassengerName string       `json:"passenger_name"`
	SeatNumber    string       `json:"seat_number"`
	Status        TicketStatus `json:"status"`
}

// OfflineSnapshot — денормализованный список пассажиров рейса,
// выгружаемый на устройство посадки перед отправлением. После выгрузки
// только читается; заменяется целиком при следующей синхронизации.
type OfflineSnapshot struct {
	TripID            string           `json:"trip_id"`
	DepartureCity     string           `json:"departure_city"`
	ArrivalCity       string           `json:"arrival_city"`
	DepartureDatetime time.Time        `json:"departure_datetime"`
	TotalSeats        int              `json:"total_seats"`
	Tickets           []SnapshotTicket `json:"tickets"`
	PreparedAt        time.Time        `json:"prepared_at"`
}
