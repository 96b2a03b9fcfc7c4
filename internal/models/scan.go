package models

import "time"

// ScanStatus — исход попытки посадки
type ScanStatus string

const (
	ScanValid       ScanStatus = "valid"
	ScanInvalid     ScanStatus = "invalid"
	ScanAlreadyUsed ScanStatus = "already_used"
	ScanExpired     ScanStatus = "expired"
	ScanWrongTrip   ScanStatus = "wrong_trip"
)

// Severity — важность записи журнала сканирований
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// ScanRecord — одна попытка посадки. Журнал append-only: записи не
// изменяются и не удаляются, по ним работает антифрод.
type ScanRecord struct {
	ID           string         `json:"id"`
	TicketID     string         `json:"ticket_id"`
	TicketNumber string         `json:"ticket_number"`
	TripID       string         `json:"trip_id"`
	AgentID      string         `json:"agent_id"`
	Status       ScanStatus     `json:"status"`
	Reason       string         `json:"reason,omitempty"`
	Severity     Severity       `json:"severity"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	DeviceInfo   map[string]any `json:"device_info,omitempty"`
	IsOffline    bool           `json:"is_offline"`
	ScannedAt    time.Time      `json:"scanned_at"`
	SyncedAt     *time.Time     `json:"synced_at,omitempty"`
}

// IsValidScan сообщает, прошла ли посадка
func (r ScanRecord) IsValidScan() bool { return r.Status == ScanValid }
