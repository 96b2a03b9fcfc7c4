package service

import (
	"context"
	"time"

	"github.com/ticketzen/boarding-service/internal/models"
)

// Clock — абстракция времени для тестируемости
type Clock interface {
	Now() time.Time
}

// TokenCodec — выпуск и проверка подписанных QR-токенов
type TokenCodec interface {
	Issue(claims models.BoardingClaims) (string, error)
	Decode(token string) (*models.BoardingClaims, error)
}

// TicketRepository — авторитетные записи билетов и рейсов. Владеет ими
// внешний CRUD-слой; здесь граница чтения плюс CAS-переход
// confirmed→used, который применяется по результату валидации.
type TicketRepository interface {
	GetTicket(ctx context.Context, id string) (models.Ticket, error)
	GetTrip(ctx context.Context, id string) (models.Trip, error)
	ListTripTickets(ctx context.Context, tripID string, statuses []models.TicketStatus) ([]models.Ticket, error)
	// MarkTicketUsed — атомарный переход confirmed→used; ErrConflict,
	// если билет уже не confirmed
	MarkTicketUsed(ctx context.Context, id string) error
}

// ScanRepository — append-only журнал попыток посадки и фрод-алертов
type ScanRepository interface {
	AppendScan(ctx context.Context, rec models.ScanRecord) error
	ListTicketScans(ctx context.Context, ticketID string) ([]models.ScanRecord, error)
	CountValidBoardings(ctx context.Context, ticketID string) (int, error)
	CountDistinctAgents(ctx context.Context, ticketID string) (int, error)
	AppendFraudAlert(ctx context.Context, alert FraudAlert) error
}

// FraudAlert — критическая запись о превышении порога невалидных
// попыток. Совещательная: сам скан отклоняется обычным путём.
type FraudAlert struct {
	ID           string
	TicketID     string
	TicketNumber string
	Attempts     int64
	CreatedAt    time.Time
}

// ScanCommand — входные данные одной попытки посадки
type ScanCommand struct {
	Token      string
	TicketID   string
	AgentID    string
	Latitude   *float64
	Longitude  *float64
	DeviceInfo map[string]any
}

// Коды ошибок валидации
const (
	CodeRecentScan = "RECENT_SCAN"
	CodeInvalidQR  = "INVALID_QR"
)

// ValidationResult — структурный результат проверки; бизнес-отказ —
// не ошибка Go, а нормальный исход
type ValidationResult struct {
	IsValid      bool
	ErrorCode    string
	ErrorMessage string
	LastScanTime string // для RECENT_SCAN
	Claims       *models.BoardingClaims
	Record       *models.ScanRecord
}

// IssueQRResult — выпущенный токен с изображением QR
type IssueQRResult struct {
	TicketID     string
	TicketNumber string
	Token        string
	ImageBase64  string
	Claims       models.BoardingClaims
}
