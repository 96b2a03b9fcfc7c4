package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ticketzen/boarding-service/internal/models"
)

// OfflineScanEntry — один принятый офлайн скан в пакете синхронизации
type OfflineScanEntry struct {
	Token      string
	ScannedAt  time.Time
	AgentID    string
	Latitude   *float64
	Longitude  *float64
	DeviceInfo map[string]any
}

// SyncError — запись об энтри, которую не удалось синхронизировать
type SyncError struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// SyncResult — итог пакетной синхронизации
type SyncResult struct {
	SyncedCount int         `json:"synced_count"`
	FailedCount int         `json:"failed_count"`
	Errors      []SyncError `json:"errors,omitempty"`
}

// SyncOfflineScans — приём пакета офлайн-сканов после восстановления
// связи. Каждая запись обрабатывается независимо: отказ одной не
// прерывает пакет. "Синхронизировано" значит «скан записан в журнал»,
// в том числе с невалидным статусом; failed — только записи, из
// которых не удалось извлечь билет или которые не удалось сохранить.
// Окно подавления повторных сканов здесь не применяется: это
// реконсиляция прошлого, а не живой двойной скан.
func (s *Service) SyncOfflineScans(ctx context.Context, tripID string, entries []OfflineScanEntry) (SyncResult, error) {
	var res SyncResult
	now := s.clock.Now().UTC()

	for _, e := range entries {
		claims, err := s.codec.Decode(e.Token)
		if err != nil {
			res.FailedCount++
			res.Errors = append(res.Errors, SyncError{Token: e.Token, Error: err.Error()})
			continue
		}
		ticket, err := s.tickets.GetTicket(ctx, claims.TicketID)
		if err != nil {
			if errors.Is(err, ErrTicketNotFound) {
				res.FailedCount++
				res.Errors = append(res.Errors, SyncError{Token: e.Token, Error: "ticket not found"})
				continue
			}
			return SyncResult{}, err
		}
		trip, err := s.tickets.GetTrip(ctx, ticket.TripID)
		if err != nil {
			return SyncResult{}, err
		}

		status, reason := models.ScanWrongTrip, "qr code does not match this trip"
		if tripID == "" || claims.TripID == tripID {
			status, reason = s.checkAgainstTicket(claims, ticket, trip, e.ScannedAt.UTC())
		}

		severity := models.SeverityInfo
		if status != models.ScanValid {
			severity = models.SeverityWarning
		}
		syncedAt := now
		rec := models.ScanRecord{
			ID:           uuid.New().String(),
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			TripID:       ticket.TripID,
			AgentID:      e.AgentID,
			Status:       status,
			Reason:       reason,
			Severity:     severity,
			Latitude:     e.Latitude,
			Longitude:    e.Longitude,
			DeviceInfo:   e.DeviceInfo,
			IsOffline:    true,
			ScannedAt:    e.ScannedAt.UTC(),
			SyncedAt:     &syncedAt,
		}
		if err := s.scans.AppendScan(ctx, rec); err != nil {
			res.FailedCount++
			res.Errors = append(res.Errors, SyncError{Token: e.Token, Error: "failed to store scan"})
			continue
		}
		res.SyncedCount++
	}
	return res, nil
}
