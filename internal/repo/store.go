package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketzen/boarding-service/internal/models"
	"github.com/ticketzen/boarding-service/internal/service"
)

// NewPool открывает пул соединений и проверяет доступность базы
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store — адаптер Postgres, реализующий порты service.*
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// TicketRepository
func (s *Store) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	var t models.Ticket
	err := s.pool.QueryRow(ctx,
		`SELECT `+colID+`, `+colTicketNumber+`, `+colTripID+`, `+colPassengerName+`, `+colSeatNumber+`, `+colStatus+`
		 FROM `+tableTickets+` WHERE `+colID+`=$1`, id).
		Scan(&t.ID, &t.TicketNumber, &t.TripID, &t.PassengerName, &t.SeatNumber, &t.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Ticket{}, service.ErrTicketNotFound
	}
	return t, err
}

func (s *Store) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	var t models.Trip
	err := s.pool.QueryRow(ctx,
		`SELECT `+colID+`, `+colCompanyID+`, `+colDepartureCity+`, `+colArrivalCity+`, `+colDepartureDatetime+`, `+colTotalSeats+`
		 FROM `+tableTrips+` WHERE `+colID+`=$1`, id).
		Scan(&t.ID, &t.CompanyID, &t.DepartureCity, &t.ArrivalCity, &t.DepartureDatetime, &t.TotalSeats)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Trip{}, service.ErrTripNotFound
	}
	return t, err
}

func (s *Store) ListTripTickets(ctx context.Context, tripID string, statuses []models.TicketStatus) ([]models.Ticket, error) {
	want := make([]string, 0, len(statuses))
	for _, st := range statuses {
		want = append(want, string(st))
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+colID+`, `+colTicketNumber+`, `+colTripID+`, `+colPassengerName+`, `+colSeatNumber+`, `+colStatus+`
		 FROM `+tableTickets+` WHERE `+colTripID+`=$1 AND `+colStatus+`=ANY($2) ORDER BY `+colSeatNumber,
		tripID, want)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.TicketNumber, &t.TripID, &t.PassengerName, &t.SeatNumber, &t.Status); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MarkTicketUsed — CAS-переход confirmed→used; различает «нет билета»
// и «уже не confirmed»
func (s *Store) MarkTicketUsed(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE `+tableTickets+` SET `+colStatus+`=$1 WHERE `+colID+`=$2 AND `+colStatus+`=$3`,
		string(models.TicketUsed), id, string(models.TicketConfirmed))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := s.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM "+tableTickets+" WHERE "+colID+"=$1)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return service.ErrTicketNotFound
	}
	return service.ErrConflict
}

// ScanRepository
func (s *Store) AppendScan(ctx context.Context, rec models.ScanRecord) error {
	device := rec.DeviceInfo
	if device == nil {
		device = map[string]any{}
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+tableScanRecords+` (`+
			colID+`, `+colTicketID+`, `+colTicketNumber+`, `+colTripID+`, `+colAgentID+`, `+
			colStatus+`, `+colReason+`, `+colSeverity+`, `+colLatitude+`, `+colLongitude+`, `+
			colDeviceInfo+`, `+colIsOffline+`, `+colScannedAt+`, `+colSyncedAt+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		rec.ID, rec.TicketID, rec.TicketNumber, rec.TripID, rec.AgentID,
		string(rec.Status), rec.Reason, string(rec.Severity), rec.Latitude, rec.Longitude,
		device, rec.IsOffline, rec.ScannedAt, rec.SyncedAt)
	return err
}

func (s *Store) ListTicketScans(ctx context.Context, ticketID string) ([]models.ScanRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+colID+`, `+colTicketID+`, `+colTicketNumber+`, `+colTripID+`, `+colAgentID+`, `+
			colStatus+`, `+colReason+`, `+colSeverity+`, `+colLatitude+`, `+colLongitude+`, `+
			colDeviceInfo+`, `+colIsOffline+`, `+colScannedAt+`, `+colSyncedAt+`
		 FROM `+tableScanRecords+` WHERE `+colTicketID+`=$1 ORDER BY `+colScannedAt+` DESC`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.ScanRecord
	for rows.Next() {
		var r models.ScanRecord
		if err := rows.Scan(&r.ID, &r.TicketID, &r.TicketNumber, &r.TripID, &r.AgentID,
			&r.Status, &r.Reason, &r.Severity, &r.Latitude, &r.Longitude,
			&r.DeviceInfo, &r.IsOffline, &r.ScannedAt, &r.SyncedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) CountValidBoardings(ctx context.Context, ticketID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+tableScanRecords+` WHERE `+colTicketID+`=$1 AND `+colStatus+`=$2`,
		ticketID, string(models.ScanValid)).Scan(&n)
	return n, err
}

func (s *Store) CountDistinctAgents(ctx context.Context, ticketID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT `+colAgentID+`) FROM `+tableScanRecords+` WHERE `+colTicketID+`=$1`,
		ticketID).Scan(&n)
	return n, err
}

func (s *Store) AppendFraudAlert(ctx context.Context, alert service.FraudAlert) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+tableFraudAlerts+` (`+colID+`, `+colTicketID+`, `+colTicketNumber+`, `+colAttempts+`, `+colCreatedAt+`)
		 VALUES ($1,$2,$3,$4,$5)`,
		alert.ID, alert.TicketID, alert.TicketNumber, alert.Attempts, alert.CreatedAt)
	return err
}

// Сидинг для demo-ticket CLI
func (s *Store) InsertTrip(ctx context.Context, trip models.Trip) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+tableTrips+` (`+colID+`, `+colCompanyID+`, `+colDepartureCity+`, `+colArrivalCity+`, `+colDepartureDatetime+`, `+colTotalSeats+`)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		trip.ID, trip.CompanyID, trip.DepartureCity, trip.ArrivalCity, trip.DepartureDatetime, trip.TotalSeats)
	return err
}

func (s *Store) InsertTicket(ctx context.Context, t models.Ticket) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+tableTickets+` (`+colID+`, `+colTicketNumber+`, `+colTripID+`, `+colPassengerName+`, `+colSeatNumber+`, `+colStatus+`)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		t.ID, t.TicketNumber, t.TripID, t.PassengerName, t.SeatNumber, string(t.Status))
	return err
}
