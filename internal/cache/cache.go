// Package cache — key-value хранилище с TTL для окон подавления сканов,
// счётчиков невалидных попыток и локальных офлайн-отметок. Хранилища
// best-effort: записи истекают, транзакционность не гарантируется.
package cache

import (
	"context"
	"time"
)

// TTLStore — порт кэша. Инжектируется в валидаторы: в проде Redis,
// на офлайн-устройстве и в тестах — память.
type TTLStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr увеличивает счётчик по ключу; первый инкремент открывает
	// TTL-окно, остальные его не продлевают.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, key string) error
}
