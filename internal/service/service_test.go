package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ticketzen/boarding-service/internal/cache"
	"github.com/ticketzen/boarding-service/internal/crypto"
	"github.com/ticketzen/boarding-service/internal/models"
)

// --- фейки и окружение ---

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeTickets struct {
	tickets map[string]models.Ticket
	trips   map[string]models.Trip
}

func (f *fakeTickets) GetTicket(_ context.Context, id string) (models.Ticket, error) {
	tk, ok := f.tickets[id]
	if !ok {
		return models.Ticket{}, ErrTicketNotFound
	}
	return tk, nil
}

func (f *fakeTickets) GetTrip(_ context.Context, id string) (models.Trip, error) {
	tr, ok := f.trips[id]
	if !ok {
		return models.Trip{}, ErrTripNotFound
	}
	return tr, nil
}

func (f *fakeTickets) ListTripTickets(_ context.Context, tripID string, statuses []models.TicketStatus) ([]models.Ticket, error) {
	var out []models.Ticket
	for _, tk := range f.tickets {
		if tk.TripID != tripID {
			continue
		}
		for _, st := range statuses {
			if tk.Status == st {
				out = append(out, tk)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeTickets) MarkTicketUsed(_ context.Context, id string) error {
	tk, ok := f.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	if tk.Status != models.TicketConfirmed {
		return ErrConflict
	}
	tk.Status = models.TicketUsed
	f.tickets[id] = tk
	return nil
}

type fakeScans struct {
	records []models.ScanRecord
	alerts  []FraudAlert
}

func (f *fakeScans) AppendScan(_ context.Context, rec models.ScanRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeScans) ListTicketScans(_ context.Context, ticketID string) ([]models.ScanRecord, error) {
	var out []models.ScanRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].TicketID == ticketID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeScans) CountValidBoardings(_ context.Context, ticketID string) (int, error) {
	n := 0
	for _, r := range f.records {
		if r.TicketID == ticketID && r.Status == models.ScanValid {
			n++
		}
	}
	return n, nil
}

func (f *fakeScans) CountDistinctAgents(_ context.Context, ticketID string) (int, error) {
	agents := map[string]struct{}{}
	for _, r := range f.records {
		if r.TicketID == ticketID {
			agents[r.AgentID] = struct{}{}
		}
	}
	return len(agents), nil
}

func (f *fakeScans) AppendFraudAlert(_ context.Context, alert FraudAlert) error {
	f.alerts = append(f.alerts, alert)
	return nil
}

type env struct {
	svc     *Service
	codec   *crypto.Codec
	tickets *fakeTickets
	scans   *fakeScans
	store   *cache.Memory
	clock   *fakeClock

	trip   models.Trip
	ticket models.Ticket
}

// newEnv собирает сервис на фейковых хранилищах, управляемом времени и
// настоящем кодеке с временной ключевой парой. Рейс отправляется через
// два часа от стартового времени.
func newEnv(t *testing.T) *env {
	t.Helper()

	dir := t.TempDir()
	signing, err := crypto.NewSigningService(
		filepath.Join(dir, "qr_private.pem"), filepath.Join(dir, "qr_public.pem"))
	require.NoError(t, err)
	codec := crypto.NewCodec(signing)

	// стартуем от реального времени: exp внутри JWT проверяется
	// библиотечными часами, а не нашим Clock
	clock := &fakeClock{now: time.Now().UTC().Truncate(time.Second)}

	trip := models.Trip{
		ID:                "trip-1",
		CompanyID:         "company-1",
		DepartureCity:     "Москва",
		ArrivalCity:       "Казань",
		DepartureDatetime: clock.now.Add(2 * time.Hour),
		TotalSeats:        48,
	}
	ticket := models.Ticket{
		ID:            "tk-1",
		TicketNumber:  "TZ-0001",
		TripID:        trip.ID,
		PassengerName: "Ivan Petrov",
		SeatNumber:    "12A",
		Status:        models.TicketConfirmed,
	}

	tickets := &fakeTickets{
		tickets: map[string]models.Ticket{ticket.ID: ticket},
		trips:   map[string]models.Trip{trip.ID: trip},
	}
	scans := &fakeScans{}
	store := cache.NewMemoryWithClock(clock.Now)

	return &env{
		svc:     New(codec, tickets, scans, store, clock, Options{}),
		codec:   codec,
		tickets: tickets,
		scans:   scans,
		store:   store,
		clock:   clock,
		trip:    trip,
		ticket:  ticket,
	}
}

// issueToken выпускает токен штатным путём
func (e *env) issueToken(t *testing.T) string {
	t.Helper()
	res, err := e.svc.IssueQR(context.Background(), e.ticket.ID)
	require.NoError(t, err)
	return res.Token
}

// forgeToken подписывает произвольные claims настоящим ключом — для
// сценариев рассинхронизации токена и авторитетной записи
func (e *env) forgeToken(t *testing.T, claims models.BoardingClaims) string {
	t.Helper()
	token, err := e.codec.Issue(claims)
	require.NoError(t, err)
	return token
}

func (e *env) defaultClaims() models.BoardingClaims {
	return models.BoardingClaims{
		TicketID:          e.ticket.ID,
		TicketNumber:      e.ticket.TicketNumber,
		TripID:            e.trip.ID,
		PassengerName:     e.ticket.PassengerName,
		SeatNumber:        e.ticket.SeatNumber,
		DepartureDatetime: e.trip.DepartureDatetime.UTC(),
		DepartureCity:     e.trip.DepartureCity,
		ArrivalCity:       e.trip.ArrivalCity,
		IssuedAt:          e.clock.now,
		ExpiresAt:         e.trip.DepartureDatetime.UTC().Add(24 * time.Hour),
	}
}

func (e *env) scanCmd(token string) ScanCommand {
	return ScanCommand{Token: token, TicketID: e.ticket.ID, AgentID: "agent-1"}
}

// --- выпуск ---

func TestIssueQR(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	res, err := e.svc.IssueQR(context.Background(), e.ticket.ID)
	require.NoError(t, err)
	require.Equal(t, e.ticket.ID, res.TicketID)
	require.NotEmpty(t, res.ImageBase64)

	claims, err := e.codec.Decode(res.Token)
	require.NoError(t, err)
	require.Equal(t, e.ticket.TicketNumber, claims.TicketNumber)
	require.True(t, claims.ExpiresAt.Equal(e.trip.DepartureDatetime.Add(24*time.Hour)))
}

func TestIssueQR_NotConfirmed(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	tk := e.ticket
	tk.Status = models.TicketPending
	e.tickets.tickets[tk.ID] = tk

	_, err := e.svc.IssueQR(context.Background(), tk.ID)
	require.ErrorIs(t, err, ErrNotConfirmed)
}

func TestIssueQR_UnknownTicket(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	_, err := e.svc.IssueQR(context.Background(), "no-such")
	require.ErrorIs(t, err, ErrTicketNotFound)
}

func TestIssueQR_ReissueKeepsOldTokenValid(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	first := e.issueToken(t)
	e.clock.Advance(time.Minute)
	second := e.issueToken(t)

	_, err := e.codec.Decode(first)
	require.NoError(t, err, "reissue must not revoke the previous token")
	_, err = e.codec.Decode(second)
	require.NoError(t, err)
}

// --- онлайн-валидация ---

func TestValidateScan_Valid(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.svc.ValidateScan(ctx, e.scanCmd(e.issueToken(t)))
	require.NoError(t, err)
	require.True(t, res.IsValid)
	require.NotNil(t, res.Claims)
	require.NotNil(t, res.Record)
	require.True(t, res.Record.IsValidScan())
	require.Equal(t, models.SeverityInfo, res.Record.Severity)

	require.Len(t, e.scans.records, 1)
}

func TestValidateScan_DuplicateSuppressed(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	token := e.issueToken(t)

	first, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.True(t, first.IsValid)

	e.clock.Advance(time.Minute)
	second, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.False(t, second.IsValid)
	require.Equal(t, CodeRecentScan, second.ErrorCode)
	require.NotEmpty(t, second.LastScanTime)

	// повтор не попадает в журнал и не трогает счётчик попыток
	require.Len(t, e.scans.records, 1)
	_, found, _ := e.store.Get(ctx, attemptsKey(e.ticket.ID))
	require.False(t, found)
}

func TestValidateScan_SuppressionIgnoresTokenValidity(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.ValidateScan(ctx, e.scanCmd(e.issueToken(t)))
	require.NoError(t, err)

	// окно срабатывает до декодирования, даже на мусорном токене
	res, err := e.svc.ValidateScan(ctx, e.scanCmd("garbage"))
	require.NoError(t, err)
	require.Equal(t, CodeRecentScan, res.ErrorCode)
	require.Len(t, e.scans.records, 1)
}

func TestValidateScan_SuppressionIsPerAgent(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	token := e.issueToken(t)

	_, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)

	cmd := e.scanCmd(token)
	cmd.AgentID = "agent-2"
	res, err := e.svc.ValidateScan(ctx, cmd)
	require.NoError(t, err)
	require.NotEqual(t, CodeRecentScan, res.ErrorCode,
		"suppression window is keyed by ticket and agent")
}

func TestValidateScan_SuppressionExpires(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	token := e.issueToken(t)

	_, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)

	e.clock.Advance(6 * time.Minute)
	res, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.NotEqual(t, CodeRecentScan, res.ErrorCode)
}

func TestValidateScan_TamperedToken(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	token := e.issueToken(t)
	tampered := token[:len(token)-4] + "AAAA"

	res, err := e.svc.ValidateScan(ctx, e.scanCmd(tampered))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, CodeInvalidQR, res.ErrorCode)

	require.Len(t, e.scans.records, 1)
	require.Equal(t, models.ScanInvalid, e.scans.records[0].Status)
	require.Equal(t, models.SeverityWarning, e.scans.records[0].Severity)

	raw, found, _ := e.store.Get(ctx, attemptsKey(e.ticket.ID))
	require.True(t, found)
	require.Equal(t, "1", raw)
}

func TestValidateScan_AlreadyUsed(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	token := e.issueToken(t)

	tk := e.ticket
	tk.Status = models.TicketUsed
	e.tickets.tickets[tk.ID] = tk

	res, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, "ticket already used", res.ErrorMessage)
	require.Equal(t, models.ScanAlreadyUsed, e.scans.records[0].Status)
}

func TestValidateScan_WrongTrip(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	claims := e.defaultClaims()
	claims.TripID = "trip-other"
	token := e.forgeToken(t, claims)

	res, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, models.ScanWrongTrip, e.scans.records[0].Status)
}

func TestValidateScan_TicketMismatch(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	claims := e.defaultClaims()
	claims.TicketID = "tk-other"
	token := e.forgeToken(t, claims)

	res, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, "qr code does not match ticket", res.ErrorMessage)
}

func TestValidateScan_DepartureWindowClosed(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	// подпись и exp токена ещё валидны, но авторитетное время
	// отправления ушло за пределы окна
	tr := e.trip
	tr.DepartureDatetime = e.clock.now.Add(-30 * time.Hour)
	e.tickets.trips[tr.ID] = tr

	claims := e.defaultClaims()
	claims.ExpiresAt = e.clock.now.Add(time.Hour)
	token := e.forgeToken(t, claims)

	res, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, "qr code expired", res.ErrorMessage)
	require.Equal(t, models.ScanExpired, e.scans.records[0].Status)
}

func TestValidateScan_ExpiredToken(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	token := e.issueToken(t)

	e.clock.Advance(27 * time.Hour) // отправление +2ч, окно 24ч

	res, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, models.ScanExpired, e.scans.records[0].Status)
}

func TestValidateScan_UnknownTicket(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	cmd := e.scanCmd(e.issueToken(t))
	cmd.TicketID = "no-such"
	_, err := e.svc.ValidateScan(context.Background(), cmd)
	require.ErrorIs(t, err, ErrTicketNotFound)
}

func TestValidateScan_FraudAlertExactlyOnce(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		cmd := e.scanCmd("garbage-token")
		cmd.AgentID = "agent-1"
		res, err := e.svc.ValidateScan(ctx, cmd)
		require.NoError(t, err)
		require.False(t, res.IsValid)
	}

	raw, found, _ := e.store.Get(ctx, attemptsKey(e.ticket.ID))
	require.True(t, found)
	require.Equal(t, "6", raw)

	require.Len(t, e.scans.alerts, 1, "alert fires once per window, at the threshold")
	require.Equal(t, int64(fraudAlertThreshold), e.scans.alerts[0].Attempts)
	require.Equal(t, e.ticket.ID, e.scans.alerts[0].TicketID)
}

// --- переход confirmed→used ---

func TestMarkBoarded(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.svc.MarkBoarded(ctx, e.ticket.ID))
	require.Equal(t, models.TicketUsed, e.tickets.tickets[e.ticket.ID].Status)

	require.ErrorIs(t, e.svc.MarkBoarded(ctx, e.ticket.ID), ErrConflict)
}

// --- офлайн-слепок ---

func TestPrepareSnapshot(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	e.tickets.tickets["tk-2"] = models.Ticket{
		ID: "tk-2", TicketNumber: "TZ-0002", TripID: e.trip.ID,
		PassengerName: "Anna Sidorova", SeatNumber: "12B", Status: models.TicketPending,
	}
	e.tickets.tickets["tk-3"] = models.Ticket{
		ID: "tk-3", TicketNumber: "TZ-0003", TripID: e.trip.ID,
		PassengerName: "Petr Ivanov", SeatNumber: "12C", Status: models.TicketCancelled,
	}

	snap, err := e.svc.PrepareSnapshot(context.Background(), e.trip.ID)
	require.NoError(t, err)
	require.Equal(t, e.trip.ID, snap.TripID)
	require.Len(t, snap.Tickets, 2, "cancelled tickets are not part of the roster")
	require.True(t, snap.PreparedAt.Equal(e.clock.now))
}

func TestPrepareSnapshot_UnknownTrip(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	_, err := e.svc.PrepareSnapshot(context.Background(), "no-such")
	require.ErrorIs(t, err, ErrTripNotFound)
}

// --- сквозной сценарий посадки ---

func TestBoardingFlow(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	token := e.issueToken(t)

	// посадка
	res, err := e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.True(t, res.IsValid)
	require.NoError(t, e.svc.MarkBoarded(ctx, e.ticket.ID))

	// немедленный повтор глушится окном подавления
	res, err = e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.Equal(t, CodeRecentScan, res.ErrorCode)

	// после окна повтор отклоняется уже по статусу билета
	e.clock.Advance(10 * time.Minute)
	res, err = e.svc.ValidateScan(ctx, e.scanCmd(token))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, "ticket already used", res.ErrorMessage)

	history, err := e.svc.ListTicketScans(ctx, e.ticket.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}
