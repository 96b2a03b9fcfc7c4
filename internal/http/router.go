package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketzen/boarding-service/internal/cache"
	"github.com/ticketzen/boarding-service/internal/config"
	"github.com/ticketzen/boarding-service/internal/crypto"
	"github.com/ticketzen/boarding-service/internal/repo"
	issvc "github.com/ticketzen/boarding-service/internal/service"
)

func Router(pool *pgxpool.Pool, signing *crypto.SigningService, store cache.TTLStore, cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Binder = StrictJSONBinder{}
	e.HTTPErrorHandler = DefaultHTTPErrorHandler

	// Swagger UI (включается флагом ENABLE_SWAGGER=true)
	if cfg.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	v1 := e.Group("/api/v1")
	v1.GET("/healthz", Healthz)
	v1.GET("/readyz", Readyz(pool))

	// Business endpoints (DI): сервис создаётся один раз
	codec := crypto.NewCodec(signing)
	dbStore := repo.NewStore(pool)
	svc := issvc.New(codec, dbStore, dbStore, store, issvc.RealClock{}, issvc.Options{
		GraceWindow:  cfg.GraceWindow,
		ScanSuppress: cfg.ScanSuppress,
		AttemptTTL:   cfg.AttemptTTL,
	})
	// bulk-validate работает по офлайн-правилам; его локальный кэш
	// намеренно отдельный от разделяемого store
	offline := issvc.NewOfflineValidator(codec, cache.NewMemory(), issvc.RealClock{})

	v1.POST("/scans", CreateScan(svc))
	v1.POST("/scans/sync-offline", SyncOffline(svc))
	v1.POST("/scans/bulk-validate", BulkValidate(offline))
	v1.GET("/trips/:id/offline-data", TripOfflineData(svc))
	v1.POST("/tickets/:id/qr", IssueTicketQR(svc))
	v1.GET("/tickets/:id/scans", TicketScans(svc))
	v1.GET("/tickets/:id/fraud", TicketFraud(svc))

	// публичный ключ для офлайн-устройств
	e.GET("/.well-known/qr-key", PublicKey(signing))

	return e
}
