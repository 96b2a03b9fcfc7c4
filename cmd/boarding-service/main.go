// @title         boarding-service API
// @version       1.0
// @description   Сервис посадочных QR-токенов: выпуск, онлайн/офлайн валидация, антифрод.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8082
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ticketzen/boarding-service/docs"
	"github.com/ticketzen/boarding-service/internal/cache"
	icfg "github.com/ticketzen/boarding-service/internal/config"
	"github.com/ticketzen/boarding-service/internal/crypto"
	ih "github.com/ticketzen/boarding-service/internal/http"
	"github.com/ticketzen/boarding-service/internal/repo"
)

func main() {
	cfg := icfg.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signing, err := crypto.NewSigningService(cfg.PrivateKeyPath, cfg.PublicKeyPath)
	if err != nil {
		log.Fatalf("keys: %v", err)
	}

	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := repo.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var store cache.TTLStore = cache.NewMemory()
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		store = rdb
	}

	e := ih.Router(pool, signing, store, cfg)

	srv := &http.Server{
		Addr:              cfg.Bind,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("boarding-service listening on %s", cfg.Bind)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(shutdownCtx)
}
