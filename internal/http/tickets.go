package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ticketzen/boarding-service/internal/http/dto"
	issvc "github.com/ticketzen/boarding-service/internal/service"
)

// IssueTicketQR — выпуск (перевыпуск) посадочного QR для билета.
// Перевыпуск не отзывает прежний токен.
// @Summary     Выпуск посадочного QR
// @Tags        tickets
// @Produce     json
// @Param       id  path string true "Ticket ID"
// @Success     201 {object} dto.IssueQRResponse
// @Failure     404 {object} APIError
// @Failure     409 {object} APIError
// @Router      /tickets/{id}/qr [post]
func IssueTicketQR(svc *issvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "id"})
		}
		res, err := svc.IssueQR(c.Request().Context(), id)
		if err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		return writeJSON(c, http.StatusCreated, dto.FromIssueResult(res))
	}
}

// TicketScans — история сканирований билета, новые сверху
// @Summary     История сканирований
// @Tags        tickets
// @Produce     json
// @Param       id  path string true "Ticket ID"
// @Success     200 {object} dto.ScanListResponse
// @Failure     404 {object} APIError
// @Router      /tickets/{id}/scans [get]
func TicketScans(svc *issvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "id"})
		}
		if _, err := svc.GetTicket(c.Request().Context(), id); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		scans, err := svc.ListTicketScans(c.Request().Context(), id)
		if err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		return writeJSON(c, http.StatusOK, dto.ScanListResponse{Scans: scans})
	}
}

// TicketFraud — антифрод-сводка по билету
// @Summary     Оценка риска по билету
// @Tags        tickets
// @Produce     json
// @Param       id  path string true "Ticket ID"
// @Success     200 {object} models.FraudAssessment
// @Failure     404 {object} APIError
// @Router      /tickets/{id}/fraud [get]
func TicketFraud(svc *issvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			return writeJSON(c, http.StatusBadRequest, APIError{Code: "invalid_request", Message: "id"})
		}
		assessment, err := svc.AssessFraud(c.Request().Context(), id)
		if err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}
		return writeJSON(c, http.StatusOK, assessment)
	}
}
