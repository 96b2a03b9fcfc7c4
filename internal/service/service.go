package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ticketzen/boarding-service/internal/cache"
	"github.com/ticketzen/boarding-service/internal/crypto"
	"github.com/ticketzen/boarding-service/internal/models"
	"github.com/ticketzen/boarding-service/internal/qr"
)

// Порог невалидных попыток, после которого пишется фрод-алерт
const fraudAlertThreshold = 5

// Ключи разделяемого кэша. Формат совместим с офлайн-синком: все три
// окна живут независимо и истекают сами.
func scanKey(ticketID, agentID string) string { return "qr_scan_" + ticketID + "_" + agentID }
func attemptsKey(ticketID string) string      { return "invalid_attempts_" + ticketID }
func alertKey(ticketID string) string         { return "fraud_alerted_" + ticketID }

// Options — настраиваемые окна валидатора
type Options struct {
	GraceWindow  time.Duration // срок жизни токена после отправления
	ScanSuppress time.Duration // окно подавления повторного скана
	AttemptTTL   time.Duration // окно счётчика невалидных попыток
}

func (o *Options) withDefaults() {
	if o.GraceWindow <= 0 {
		o.GraceWindow = 24 * time.Hour
	}
	if o.ScanSuppress <= 0 {
		o.ScanSuppress = 5 * time.Minute
	}
	if o.AttemptTTL <= 0 {
		o.AttemptTTL = time.Hour
	}
}

// Service реализует онлайн-валидацию, выпуск QR, подготовку
// офлайн-слепков и антифрод
type Service struct {
	codec   TokenCodec
	tickets TicketRepository
	scans   ScanRepository
	store   cache.TTLStore
	clock   Clock
	opts    Options
}

func New(codec TokenCodec, tickets TicketRepository, scans ScanRepository, store cache.TTLStore, clock Clock, opts Options) *Service {
	opts.withDefaults()
	return &Service{codec: codec, tickets: tickets, scans: scans, store: store, clock: clock, opts: opts}
}

// IssueQR — выпуск (или перевыпуск) посадочного токена для
// подтверждённого билета. Перевыпуск не отзывает прежний токен: тот
// остаётся криптографически валидным до собственного exp.
func (s *Service) IssueQR(ctx context.Context, ticketID string) (IssueQRResult, error) {
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return IssueQRResult{}, err
	}
	if ticket.Status != models.TicketConfirmed {
		return IssueQRResult{}, ErrNotConfirmed
	}
	trip, err := s.tickets.GetTrip(ctx, ticket.TripID)
	if err != nil {
		return IssueQRResult{}, err
	}

	now := s.clock.Now().UTC()
	claims := models.BoardingClaims{
		TicketID:          ticket.ID,
		TicketNumber:      ticket.TicketNumber,
		TripID:            trip.ID,
		PassengerName:     ticket.PassengerName,
		SeatNumber:        ticket.SeatNumber,
		DepartureDatetime: trip.DepartureDatetime.UTC(),
		DepartureCity:     trip.DepartureCity,
		ArrivalCity:       trip.ArrivalCity,
		IssuedAt:          now,
		ExpiresAt:         trip.DepartureDatetime.UTC().Add(s.opts.GraceWindow),
	}
	token, err := s.codec.Issue(claims)
	if err != nil {
		return IssueQRResult{}, err
	}
	rendered, err := qr.Render(token)
	if err != nil {
		return IssueQRResult{}, err
	}
	return IssueQRResult{
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Token:        token,
		ImageBase64:  rendered.Base64,
		Claims:       claims,
	}, nil
}

// ValidateScan — онлайн-проверка токена при посадке. Порядок шагов
// фиксирован: защита от двойного скана (до кодека), декодирование,
// сверка с авторитетным билетом, бизнес-проверки, журналирование.
func (s *Service) ValidateScan(ctx context.Context, cmd ScanCommand) (ValidationResult, error) {
	key := scanKey(cmd.TicketID, cmd.AgentID)
	last, found, err := s.store.Get(ctx, key)
	if err != nil {
		return ValidationResult{}, err
	}
	if found {
		return ValidationResult{
			IsValid:      false,
			ErrorCode:    CodeRecentScan,
			ErrorMessage: fmt.Sprintf("ticket already scanned within the last %s", s.opts.ScanSuppress),
			LastScanTime: last,
		}, nil
	}

	ticket, err := s.tickets.GetTicket(ctx, cmd.TicketID)
	if err != nil {
		return ValidationResult{}, err
	}
	trip, err := s.tickets.GetTrip(ctx, ticket.TripID)
	if err != nil {
		return ValidationResult{}, err
	}
	now := s.clock.Now().UTC()

	claims, decodeErr := s.codec.Decode(cmd.Token)
	var status models.ScanStatus
	var reason string
	if decodeErr != nil {
		status, reason = models.ScanInvalid, "invalid token"
		var ite *crypto.InvalidTokenError
		if errors.As(decodeErr, &ite) {
			reason = ite.Reason
			if ite.Expired() {
				status = models.ScanExpired
			}
		}
	} else {
		status, reason = s.checkAgainstTicket(claims, ticket, trip, now)
	}

	if status != models.ScanValid {
		rec := s.newScanRecord(cmd, ticket, status, reason, now)
		if err := s.scans.AppendScan(ctx, rec); err != nil {
			return ValidationResult{}, err
		}
		if err := s.bumpInvalidAttempts(ctx, ticket); err != nil {
			return ValidationResult{}, err
		}
		return ValidationResult{
			IsValid:      false,
			ErrorCode:    CodeInvalidQR,
			ErrorMessage: reason,
			Claims:       claims,
			Record:       &rec,
		}, nil
	}
	if err := s.store.Set(ctx, key, now.Format(time.RFC3339), s.opts.ScanSuppress); err != nil {
		return ValidationResult{}, err
	}
	rec := s.newScanRecord(cmd, ticket, models.ScanValid, "", now)
	if err := s.scans.AppendScan(ctx, rec); err != nil {
		return ValidationResult{}, err
	}
	return ValidationResult{IsValid: true, Claims: claims, Record: &rec}, nil
}

// MarkBoarded — финальный переход билета confirmed→used. CAS в
// хранилище делает итоговое состояние консистентным даже при гонке
// двух одновременных сканов.
func (s *Service) MarkBoarded(ctx context.Context, ticketID string) error {
	return s.tickets.MarkTicketUsed(ctx, ticketID)
}

// checkAgainstTicket — бизнес-проверки в фиксированном порядке:
// соответствие билету, already-used, confirmed, рейс, окно отправления.
// Побеждает первая сработавшая. Окно считается от авторитетного
// времени отправления, не от claims: расписание могло сдвинуться.
func (s *Service) checkAgainstTicket(claims *models.BoardingClaims, ticket models.Ticket, trip models.Trip, now time.Time) (models.ScanStatus, string) {
	if claims.TicketID != ticket.ID {
		return models.ScanInvalid, "qr code does not match ticket"
	}
	if claims.TicketNumber != ticket.TicketNumber {
		return models.ScanInvalid, "invalid ticket number"
	}
	if ticket.Status == models.TicketUsed {
		return models.ScanAlreadyUsed, "ticket already used"
	}
	if ticket.Status != models.TicketConfirmed {
		return models.ScanInvalid, "ticket not confirmed"
	}
	if claims.TripID != ticket.TripID {
		return models.ScanWrongTrip, "qr code does not match this trip"
	}
	if now.After(trip.DepartureDatetime.Add(s.opts.GraceWindow)) {
		return models.ScanExpired, "qr code expired"
	}
	return models.ScanValid, ""
}

func (s *Service) newScanRecord(cmd ScanCommand, ticket models.Ticket, status models.ScanStatus, reason string, scannedAt time.Time) models.ScanRecord {
	severity := models.SeverityInfo
	if status != models.ScanValid {
		severity = models.SeverityWarning
	}
	return models.ScanRecord{
		ID:           uuid.New().String(),
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		TripID:       ticket.TripID,
		AgentID:      cmd.AgentID,
		Status:       status,
		Reason:       reason,
		Severity:     severity,
		Latitude:     cmd.Latitude,
		Longitude:    cmd.Longitude,
		DeviceInfo:   cmd.DeviceInfo,
		ScannedAt:    scannedAt,
	}
}

// bumpInvalidAttempts ведёт счётчик невалидных попыток; при достижении
// порога пишет ровно один критический алерт на окно счётчика
func (s *Service) bumpInvalidAttempts(ctx context.Context, ticket models.Ticket) error {
	n, err := s.store.Incr(ctx, attemptsKey(ticket.ID), s.opts.AttemptTTL)
	if err != nil {
		return err
	}
	if n < fraudAlertThreshold {
		return nil
	}
	_, alerted, err := s.store.Get(ctx, alertKey(ticket.ID))
	if err != nil {
		return err
	}
	if alerted {
		return nil
	}
	if err := s.store.Set(ctx, alertKey(ticket.ID), "1", s.opts.AttemptTTL); err != nil {
		return err
	}
	log.Printf("fraud alert: %d invalid scan attempts for ticket %s", n, ticket.TicketNumber)
	return s.scans.AppendFraudAlert(ctx, FraudAlert{
		ID:           uuid.New().String(),
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Attempts:     n,
		CreatedAt:    s.clock.Now().UTC(),
	})
}

// PrepareSnapshot — проекция списка пассажиров рейса для выгрузки на
// устройство посадки перед отправлением
func (s *Service) PrepareSnapshot(ctx context.Context, tripID string) (models.OfflineSnapshot, error) {
	trip, err := s.tickets.GetTrip(ctx, tripID)
	if err != nil {
		return models.OfflineSnapshot{}, err
	}
	tickets, err := s.tickets.ListTripTickets(ctx, tripID,
		[]models.TicketStatus{models.TicketConfirmed, models.TicketPending})
	if err != nil {
		return models.OfflineSnapshot{}, err
	}
	roster := make([]models.SnapshotTicket, 0, len(tickets))
	for _, t := range tickets {
		roster = append(roster, models.SnapshotTicket{
			TicketID:      t.ID,
			TicketNumber:  t.TicketNumber,
			PassengerName: t.PassengerName,
			SeatNumber:    t.SeatNumber,
			Status:        t.Status,
		})
	}
	return models.OfflineSnapshot{
		TripID:            trip.ID,
		DepartureCity:     trip.DepartureCity,
		ArrivalCity:       trip.ArrivalCity,
		DepartureDatetime: trip.DepartureDatetime.UTC(),
		TotalSeats:        trip.TotalSeats,
		Tickets:           roster,
		PreparedAt:        s.clock.Now().UTC(),
	}, nil
}

// GetTicket — чтение авторитетной записи для HTTP-слоя
func (s *Service) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	return s.tickets.GetTicket(ctx, id)
}

// ListTicketScans — история сканирований билета, новые сверху
func (s *Service) ListTicketScans(ctx context.Context, ticketID string) ([]models.ScanRecord, error) {
	return s.scans.ListTicketScans(ctx, ticketID)
}
