package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"catalog_backend/internal/app/di"
	"catalog_backend/internal/app/router"
	"catalog_backend/internal/platform/config"
	"catalog_backend/internal/platform/db"
	"catalog_backend/internal/platform/logger"
	"catalog_backend/internal/platform/redis"
	"catalog_backend/internal/platform/scheduler"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Log)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := redis.NewRedisClient(ctx, cfg.Redis); err != nil {
			log.Warn().Msg("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error().Err(err).Msg("Failed to close Redis client")
				}
			}()
		}
	}

	c := di.NewContainer(gdb, rdb, di.Options{TokenCacheTTL: cfg.TokenCacheTTL})

	// 期限切れトークンの定期削除
	sched := scheduler.New(c.Tokens, cfg.TokenRetention)
	if err := sched.Start(cfg.PurgeSchedule); err != nil {
		return err
	}

	// ルータ生成
	r := router.NewRouter(c, router.Options{
		Debug:       cfg.Debug,
		CORSOrigins: cfg.CORSOrigins,
		DB:          sqlDB,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server exited")
	return nil
}
