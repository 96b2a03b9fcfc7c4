package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ticketzen/boarding-service/internal/cache"
	"github.com/ticketzen/boarding-service/internal/models"
)

// newOfflineEnv — валидатор устройства посадки: общий кодек, но свой
// локальный кэш, независимый от серверного
func newOfflineEnv(t *testing.T) (*env, *OfflineValidator) {
	t.Helper()
	e := newEnv(t)
	v := NewOfflineValidator(e.codec, cache.NewMemoryWithClock(e.clock.Now), e.clock)
	return e, v
}

func (e *env) snapshot(t *testing.T) models.OfflineSnapshot {
	t.Helper()
	snap, err := e.svc.PrepareSnapshot(context.Background(), e.trip.ID)
	require.NoError(t, err)
	return snap
}

func TestValidateOffline_Valid(t *testing.T) {
	t.Parallel()
	e, v := newOfflineEnv(t)
	ctx := context.Background()

	res, err := v.ValidateOffline(ctx, e.issueToken(t), e.snapshot(t))
	require.NoError(t, err)
	require.True(t, res.IsValid)
	require.NotNil(t, res.Claims)
	require.True(t, res.NeedsSync, "accepted offline scan must reach the server later")
}

func TestValidateOffline_DuplicateLocalScan(t *testing.T) {
	t.Parallel()
	e, v := newOfflineEnv(t)
	ctx := context.Background()
	token := e.issueToken(t)
	snap := e.snapshot(t)

	_, err := v.ValidateOffline(ctx, token, snap)
	require.NoError(t, err)

	res, err := v.ValidateOffline(ctx, token, snap)
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, "ticket already scanned locally", res.Error)
	require.True(t, res.NeedsSync, "duplicate is still evidence worth syncing")
}

func TestValidateOffline_WrongTrip(t *testing.T) {
	t.Parallel()
	e, v := newOfflineEnv(t)

	snap := e.snapshot(t)
	snap.TripID = "trip-other"

	res, err := v.ValidateOffline(context.Background(), e.issueToken(t), snap)
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, "qr code does not match this trip", res.Error)
	require.False(t, res.NeedsSync)
}

func TestValidateOffline_ExpiredByLocalClock(t *testing.T) {
	t.Parallel()
	e, v := newOfflineEnv(t)
	token := e.issueToken(t)

	e.clock.Advance(27 * time.Hour)

	res, err := v.ValidateOffline(context.Background(), token, e.snapshot(t))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Equal(t, "qr code expired", res.Error)
}

func TestValidateOffline_Tampered(t *testing.T) {
	t.Parallel()
	e, v := newOfflineEnv(t)
	token := e.issueToken(t)

	res, err := v.ValidateOffline(context.Background(), "x."+token, e.snapshot(t))
	require.NoError(t, err)
	require.False(t, res.IsValid)
	require.Nil(t, res.Claims)
	require.False(t, res.NeedsSync)
}

func TestBulkValidate(t *testing.T) {
	t.Parallel()
	e, v := newOfflineEnv(t)

	good := e.issueToken(t)

	wrongTrip := e.defaultClaims()
	wrongTrip.TripID = "trip-other"

	tokens := []string{good, "garbage", e.forgeToken(t, wrongTrip)}
	res := v.BulkValidate(context.Background(), tokens, e.trip.ID)

	require.Equal(t, 3, res.Total)
	require.Len(t, res.Valid, 1)
	require.Len(t, res.Invalid, 2)
	require.Equal(t, good, res.Valid[0].Token)
	require.NotNil(t, res.Valid[0].Claims)
	for _, inv := range res.Invalid {
		require.NotEmpty(t, inv.Error)
	}
}

func TestBulkValidate_DoesNotMarkScanned(t *testing.T) {
	t.Parallel()
	e, v := newOfflineEnv(t)
	ctx := context.Background()
	token := e.issueToken(t)

	res := v.BulkValidate(ctx, []string{token, token}, e.trip.ID)
	require.Len(t, res.Valid, 2, "bulk validation is read-only, entries are independent")

	// пакетная проверка не оставляет локальных отметок
	single, err := v.ValidateOffline(ctx, token, e.snapshot(t))
	require.NoError(t, err)
	require.True(t, single.IsValid)
}
