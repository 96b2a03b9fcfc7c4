package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ticketzen/boarding-service/internal/models"
)

// InvalidTokenError — единая ошибка для любого отказа декодирования.
// Истёкший токен отличим через Expired(): для UX это не мошенничество,
// но причина отказа не раскрывает деталей криптографии.
type InvalidTokenError struct {
	Reason  string
	expired bool
}

func (e *InvalidTokenError) Error() string { return "invalid qr token: " + e.Reason }

// Expired сообщает, что токен отклонён из-за истечения срока
func (e *InvalidTokenError) Expired() bool { return e.expired }

// qrClaims — wire-формат claims токена: доменные поля плюс
// стандартные exp/iss из RegisteredClaims
type qrClaims struct {
	TicketID          string `json:"ticket_id"`
	TicketNumber      string `json:"ticket_number"`
	TripID            string `json:"trip_id"`
	PassengerName     string `json:"passenger_name"`
	SeatNumber        string `json:"seat_number"`
	DepartureDatetime string `json:"departure_datetime"`
	DepartureCity     string `json:"departure_city"`
	ArrivalCity       string `json:"arrival_city"`
	IssuedAt          string `json:"issued_at"`
	Type              string `json:"type"`
	jwt.RegisteredClaims
}

// Codec выпускает и проверяет подписанные QR-токены (RS256)
type Codec struct {
	signing *SigningService
}

func NewCodec(signing *SigningService) *Codec { return &Codec{signing: signing} }

// Issue сериализует claims и подписывает их приватным ключом.
// Результат — компактный JWT, пригодный для вставки в QR-код.
func (c *Codec) Issue(claims models.BoardingClaims) (string, error) {
	wire := qrClaims{
		TicketID:          claims.TicketID,
		TicketNumber:      claims.TicketNumber,
		TripID:            claims.TripID,
		PassengerName:     claims.PassengerName,
		SeatNumber:        claims.SeatNumber,
		DepartureDatetime: claims.DepartureDatetime.UTC().Format(time.RFC3339),
		DepartureCity:     claims.DepartureCity,
		ArrivalCity:       claims.ArrivalCity,
		IssuedAt:          claims.IssuedAt.UTC().Format(time.RFC3339),
		Type:              models.TokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    models.Issuer,
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt.UTC()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, wire).SignedString(c.signing.PrivateKey())
}

// Decode проверяет подпись, срок, эмитента и тип токена; только после
// всех проверок возвращает распарсенные claims. Любой отказ —
// *InvalidTokenError.
func (c *Codec) Decode(token string) (*models.BoardingClaims, error) {
	wire := &qrClaims{}
	_, err := jwt.ParseWithClaims(token, wire,
		func(t *jwt.Token) (interface{}, error) { return c.signing.PublicKey(), nil },
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(models.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if wire.Type != models.TokenType {
		return nil, &InvalidTokenError{Reason: "wrong token type"}
	}

	departure, err := time.Parse(time.RFC3339, wire.DepartureDatetime)
	if err != nil {
		return nil, &InvalidTokenError{Reason: "malformed claims"}
	}
	issuedAt, err := time.Parse(time.RFC3339, wire.IssuedAt)
	if err != nil {
		return nil, &InvalidTokenError{Reason: "malformed claims"}
	}

	return &models.BoardingClaims{
		TicketID:          wire.TicketID,
		TicketNumber:      wire.TicketNumber,
		TripID:            wire.TripID,
		PassengerName:     wire.PassengerName,
		SeatNumber:        wire.SeatNumber,
		DepartureDatetime: departure,
		DepartureCity:     wire.DepartureCity,
		ArrivalCity:       wire.ArrivalCity,
		IssuedAt:          issuedAt,
		ExpiresAt:         wire.ExpiresAt.Time,
	}, nil
}

func mapJWTError(err error) *InvalidTokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &InvalidTokenError{Reason: "qr code expired", expired: true}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &InvalidTokenError{Reason: "invalid signature"}
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return &InvalidTokenError{Reason: "wrong issuer"}
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &InvalidTokenError{Reason: "malformed token"}
	default:
		return &InvalidTokenError{Reason: "invalid token"}
	}
}
