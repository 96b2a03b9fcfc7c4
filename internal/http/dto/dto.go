package dto

import (
	"time"

	"github.com/ticketzen/boarding-service/internal/models"
)

// ScanRequest — попытка посадки по QR-токену
type ScanRequest struct {
	Token      string         `json:"token"`
	TicketID   string         `json:"ticket_id"`
	AgentID    string         `json:"agent_id"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
	DeviceInfo map[string]any `json:"device_info,omitempty"`
}

// ClaimsDTO — декодированные claims токена в ответах API
type ClaimsDTO struct {
	TicketID          string `json:"ticket_id"`
	TicketNumber      string `json:"ticket_number"`
	TripID            string `json:"trip_id"`
	PassengerName     string `json:"passenger_name"`
	SeatNumber        string `json:"seat_number"`
	DepartureDatetime string `json:"departure_datetime"`
	DepartureCity     string `json:"departure_city"`
	ArrivalCity       string `json:"arrival_city"`
	IssuedAt          string `json:"issued_at"`
	ExpiresAt         string `json:"expires_at"`
}

// ScanResponse — структурный результат валидации скана
type ScanResponse struct {
	IsValid      bool       `json:"is_valid"`
	ErrorCode    string     `json:"error_code,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	LastScanTime string     `json:"last_scan_time,omitempty"`
	ScanStatus   string     `json:"scan_status,omitempty"`
	DecodedData  *ClaimsDTO `json:"decoded_data,omitempty"`
}

// OfflineScanDTO — один офлайн скан в пакете синхронизации
type OfflineScanDTO struct {
	Token      string         `json:"token"`
	ScannedAt  time.Time      `json:"scanned_at"`
	AgentID    string         `json:"agent_id"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
	DeviceInfo map[string]any `json:"device_info,omitempty"`
}

// SyncOfflineRequest — пакет офлайн-сканов после восстановления связи
type SyncOfflineRequest struct {
	TripID string           `json:"trip_id"`
	Scans  []OfflineScanDTO `json:"scans"`
}

type SyncErrorDTO struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

type SyncOfflineResponse struct {
	SyncedCount int            `json:"synced_count"`
	FailedCount int            `json:"failed_count"`
	Errors      []SyncErrorDTO `json:"errors,omitempty"`
}

// BulkValidateRequest — пакетная офлайн-проверка без записи в журнал
type BulkValidateRequest struct {
	TripID string   `json:"trip_id"`
	Tokens []string `json:"tokens"`
}

type BulkEntryDTO struct {
	Token       string     `json:"token"`
	DecodedData *ClaimsDTO `json:"decoded_data,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type BulkValidateResponse struct {
	Valid   []BulkEntryDTO `json:"valid"`
	Invalid []BulkEntryDTO `json:"invalid"`
	Total   int            `json:"total"`
}

// IssueQRResponse — выпущенный посадочный токен
type IssueQRResponse struct {
	TicketID     string `json:"ticket_id"`
	TicketNumber string `json:"ticket_number"`
	HolderHint   string `json:"holder_hint"`
	Token        string `json:"token"`
	ImageBase64  string `json:"image_base64"`
	ExpiresAt    string `json:"expires_at"`
}

// ScanListResponse — история сканирований билета
type ScanListResponse struct {
	Scans []models.ScanRecord `json:"scans"`
}

// PublicKeyResponse — публичный ключ проверки подписи для
// офлайн-устройств
type PublicKeyResponse struct {
	Algorithm    string `json:"alg"`
	PublicKeyPEM string `json:"public_key_pem"`
}
