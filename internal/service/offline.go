package service

import (
	"context"
	"errors"
	"time"

	"github.com/ticketzen/boarding-service/internal/cache"
	"github.com/ticketzen/boarding-service/internal/crypto"
	"github.com/ticketzen/boarding-service/internal/models"
)

// Отметка «уже сканирован» живёт сутки: дольше рейса, короче смены
// слепка
const offlineScanRetention = 24 * time.Hour

func offlineScanKey(ticketID string) string { return "offline_scanned_" + ticketID }

// OfflineValidator проверяет токены без доступа к базе: только
// публичный ключ, слепок рейса и локальный TTL-кэш устройства.
// Кэш обязан быть отдельным от кэшей онлайн-валидатора.
type OfflineValidator struct {
	codec TokenCodec
	local cache.TTLStore
	clock Clock
}

func NewOfflineValidator(codec TokenCodec, local cache.TTLStore, clock Clock) *OfflineValidator {
	return &OfflineValidator{codec: codec, local: local, clock: clock}
}

// OfflineResult — результат офлайн-проверки. NeedsSync=true значит,
// что скан должен попасть на сервер при следующей синхронизации.
type OfflineResult struct {
	IsValid   bool                   `json:"is_valid"`
	Error     string                 `json:"error,omitempty"`
	Claims    *models.BoardingClaims `json:"decoded_data,omitempty"`
	NeedsSync bool                   `json:"needs_sync"`
}

// checkForTrip — проверки, выполнимые без базы: подпись, рейс, срок
func (v *OfflineValidator) checkForTrip(token, tripID string) (*models.BoardingClaims, string) {
	claims, err := v.codec.Decode(token)
	if err != nil {
		var ite *crypto.InvalidTokenError
		if errors.As(err, &ite) {
			return nil, ite.Reason
		}
		return nil, "invalid token"
	}
	if claims.TripID != tripID {
		return claims, "qr code does not match this trip"
	}
	if v.clock.Now().UTC().After(claims.ExpiresAt) {
		return claims, "qr code expired"
	}
	return claims, ""
}

// ValidateOffline — проверка по слепку рейса с локальной защитой от
// повторного скана. Любой принятый офлайн скан обязан доехать до
// сервера, поэтому успех всегда с NeedsSync=true.
func (v *OfflineValidator) ValidateOffline(ctx context.Context, token string, snapshot models.OfflineSnapshot) (OfflineResult, error) {
	claims, reason := v.checkForTrip(token, snapshot.TripID)
	if reason != "" {
		return OfflineResult{IsValid: false, Error: reason, Claims: claims}, nil
	}

	key := offlineScanKey(claims.TicketID)
	_, scanned, err := v.local.Get(ctx, key)
	if err != nil {
		return OfflineResult{}, err
	}
	if scanned {
		return OfflineResult{
			IsValid:   false,
			Error:     "ticket already scanned locally",
			Claims:    claims,
			NeedsSync: true,
		}, nil
	}
	if err := v.local.Set(ctx, key, "1", offlineScanRetention); err != nil {
		return OfflineResult{}, err
	}
	return OfflineResult{IsValid: true, Claims: claims, NeedsSync: true}, nil
}

// BulkEntry — результат по одному токену из пакета
type BulkEntry struct {
	Token  string                 `json:"token"`
	Claims *models.BoardingClaims `json:"decoded_data,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// BulkResult — результат пакетной офлайн-валидации
type BulkResult struct {
	Valid   []BulkEntry `json:"valid"`
	Invalid []BulkEntry `json:"invalid"`
	Total   int         `json:"total"`
}

// BulkValidate прогоняет офлайн-проверки по пакету токенов. Токены
// независимы: отказ одного не прерывает остальные. Локальная отметка
// «уже сканирован» здесь не ведётся — пакет реконсилируется сервером.
func (v *OfflineValidator) BulkValidate(_ context.Context, tokens []string, tripID string) BulkResult {
	res := BulkResult{Total: len(tokens)}
	for _, token := range tokens {
		claims, reason := v.checkForTrip(token, tripID)
		if reason != "" {
			res.Invalid = append(res.Invalid, BulkEntry{Token: token, Error: reason})
			continue
		}
		res.Valid = append(res.Valid, BulkEntry{Token: token, Claims: claims})
	}
	return res
}
