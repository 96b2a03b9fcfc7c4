package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ticketzen/boarding-service/internal/http/dto"
	issvc "github.com/ticketzen/boarding-service/internal/service"
)

// CreateScan — онлайн-валидация QR при посадке
// @Summary     Скан посадочного QR
// @Tags        scans
// @Accept      json
// @Produce     json
// @Param       request body dto.ScanRequest true "Scan"
// @Success     201 {object} dto.ScanResponse
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Router      /scans [post]
func CreateScan(svc *issvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.ScanRequest
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "malformed"})
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}

		res, err := svc.ValidateScan(c.Request().Context(), req.ToCommand())
		if err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}

		if res.IsValid {
			// финальный переход confirmed→used; проигравший гонку CAS
			// не ошибка — двойной проход ловит антифрод постфактум
			if err := svc.MarkBoarded(c.Request().Context(), req.TicketID); err != nil &&
				!errors.Is(err, issvc.ErrConflict) {
				status, body := MapError(err)
				return writeJSON(c, status, body)
			}
		}

		status := http.StatusCreated
		if res.ErrorCode == issvc.CodeRecentScan {
			// повторный скан ничего не записал
			status = http.StatusOK
		}
		return writeJSON(c, status, dto.FromValidation(res))
	}
}

// SyncOffline — приём пакета офлайн-сканов
// @Summary     Синхронизация офлайн-сканов
// @Tags        scans
// @Accept      json
// @Produce     json
// @Param       request body dto.SyncOfflineRequest true "Offline scans"
// @Success     200 {object} dto.SyncOfflineResponse
// @Failure     400 {object} APIError
// @Router      /scans/sync-offline [post]
func SyncOffline(svc *issvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SyncOfflineRequest
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "malformed"})
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		res, err := svc.SyncOfflineScans(c.Request().Context(), req.TripID, req.ToEntries())
		if err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		return writeJSON(c, http.StatusOK, dto.FromSyncResult(res))
	}
}

// BulkValidate — пакетная офлайн-проверка без записи в журнал
// @Summary     Пакетная проверка токенов
// @Tags        scans
// @Accept      json
// @Produce     json
// @Param       request body dto.BulkValidateRequest true "Tokens"
// @Success     200 {object} dto.BulkValidateResponse
// @Failure     400 {object} APIError
// @Router      /scans/bulk-validate [post]
func BulkValidate(validator *issvc.OfflineValidator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.BulkValidateRequest
		if err := c.Bind(&req); err != nil {
			return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "malformed"})
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		res := validator.BulkValidate(c.Request().Context(), req.Tokens, req.TripID)
		return writeJSON(c, http.StatusOK, dto.FromBulkResult(res))
	}
}

// TripOfflineData — слепок рейса для офлайн-валидации
// @Summary     Офлайн-слепок рейса
// @Tags        trips
// @Produce     json
// @Param       id  path string true "Trip ID"
// @Success     200 {object} models.OfflineSnapshot
// @Failure     404 {object} APIError
// @Router      /trips/{id}/offline-data [get]
func TripOfflineData(svc *issvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "id"})
		}
		snapshot, err := svc.PrepareSnapshot(c.Request().Context(), id)
		if err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		return writeJSON(c, http.StatusOK, snapshot)
	}
}
