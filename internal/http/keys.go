package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketzen/boarding-service/internal/crypto"
	"github.com/ticketzen/boarding-service/internal/http/dto"
)

// PublicKey — публичный ключ проверки подписи QR-токенов. Приватный
// ключ никогда не отдаётся.
// @Summary     Публичный ключ эмитента
// @Tags        keys
// @Produce     json
// @Success     200 {object} dto.PublicKeyResponse
// @Failure     500 {object} APIError
// @Router      /.well-known/qr-key [get]
func PublicKey(signing *crypto.SigningService) echo.HandlerFunc {
	return func(c echo.Context) error {
		pemBytes, err := signing.PublicKeyPEM()
		if err != nil {
			return writeJSON(c, http.StatusInternalServerError, APIError{Code: "internal", Message: "key"})
		}
		return writeJSON(c, http.StatusOK, dto.PublicKeyResponse{
			Algorithm:    "RS256",
			PublicKeyPEM: string(pemBytes),
		})
	}
}
