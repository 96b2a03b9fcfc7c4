package dto

import (
	"time"

	"github.com/ticketzen/boarding-service/internal/models"
	issvc "github.com/ticketzen/boarding-service/internal/service"
	"github.com/ticketzen/boarding-service/internal/util"
)

// ToCommand преобразует ScanRequest в команду use case
func (r ScanRequest) ToCommand() issvc.ScanCommand {
	return issvc.ScanCommand{
		Token:      r.Token,
		TicketID:   r.TicketID,
		AgentID:    r.AgentID,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		DeviceInfo: r.DeviceInfo,
	}
}

// ToEntries преобразует пакет синхронизации в записи use case
func (r SyncOfflineRequest) ToEntries() []issvc.OfflineScanEntry {
	out := make([]issvc.OfflineScanEntry, 0, len(r.Scans))
	for _, s := range r.Scans {
		out = append(out, issvc.OfflineScanEntry{
			Token:      s.Token,
			ScannedAt:  s.ScannedAt,
			AgentID:    s.AgentID,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			DeviceInfo: s.DeviceInfo,
		})
	}
	return out
}

// FromClaims маппит доменные claims в DTO
func FromClaims(c *models.BoardingClaims) *ClaimsDTO {
	if c == nil {
		return nil
	}
	return &ClaimsDTO{
		TicketID:          c.TicketID,
		TicketNumber:      c.TicketNumber,
		TripID:            c.TripID,
		PassengerName:     c.PassengerName,
		SeatNumber:        c.SeatNumber,
		DepartureDatetime: c.DepartureDatetime.UTC().Format(time.RFC3339),
		DepartureCity:     c.DepartureCity,
		ArrivalCity:       c.ArrivalCity,
		IssuedAt:          c.IssuedAt.UTC().Format(time.RFC3339),
		ExpiresAt:         c.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// FromValidation формирует ответ по результату онлайн-валидации
func FromValidation(res issvc.ValidationResult) ScanResponse {
	out := ScanResponse{
		IsValid:      res.IsValid,
		ErrorCode:    res.ErrorCode,
		ErrorMessage: res.ErrorMessage,
		LastScanTime: res.LastScanTime,
		DecodedData:  FromClaims(res.Claims),
	}
	if res.Record != nil {
		out.ScanStatus = string(res.Record.Status)
	}
	return out
}

// FromSyncResult формирует ответ пакетной синхронизации
func FromSyncResult(res issvc.SyncResult) SyncOfflineResponse {
	out := SyncOfflineResponse{SyncedCount: res.SyncedCount, FailedCount: res.FailedCount}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, SyncErrorDTO{Token: e.Token, Error: e.Error})
	}
	return out
}

// FromBulkResult формирует ответ пакетной офлайн-проверки
func FromBulkResult(res issvc.BulkResult) BulkValidateResponse {
	out := BulkValidateResponse{Total: res.Total, Valid: []BulkEntryDTO{}, Invalid: []BulkEntryDTO{}}
	for _, e := range res.Valid {
		out.Valid = append(out.Valid, BulkEntryDTO{Token: e.Token, DecodedData: FromClaims(e.Claims)})
	}
	for _, e := range res.Invalid {
		out.Invalid = append(out.Invalid, BulkEntryDTO{Token: e.Token, Error: e.Error})
	}
	return out
}

// FromIssueResult формирует ответ выпуска QR
func FromIssueResult(res issvc.IssueQRResult) IssueQRResponse {
	return IssueQRResponse{
		TicketID:     res.TicketID,
		TicketNumber: res.TicketNumber,
		HolderHint:   util.PassengerHint(res.Claims.PassengerName),
		Token:        res.Token,
		ImageBase64:  res.ImageBase64,
		ExpiresAt:    res.Claims.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
