package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	"github.com/BruksfildServices01/escala-voluntarios/internal/export"
	"github.com/BruksfildServices01/escala-voluntarios/internal/ratelimit"
	"github.com/BruksfildServices01/escala-voluntarios/internal/routes"
	"github.com/BruksfildServices01/escala-voluntarios/internal/timezone"
	ucBooking "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/booking"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, log := app.cfg, app.logger

	db, err := app.openDB()
	if err != nil {
		return err
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log)

	limiter, redisClient := buildLimiter()
	if redisClient != nil {
		defer redisClient.Close()
	}

	var archiver ucBooking.Archiver
	if cfg.ExportEnabled() {
		archiver = export.NewS3Archiver(cfg.Export)
		log.Info("export archive enabled", zap.String("bucket", cfg.Export.Bucket))
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    dispatcher,
		Clock:    timezone.SystemClock(timezone.Location(cfg.Timezone)),
		Limiter:  limiter,
		Archiver: archiver,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(app.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
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
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

// buildLimiter prefere o Redis (compartilhado entre instâncias) e cai para
// o limitador em memória quando ele não responde.
func buildLimiter() (ratelimit.Limiter, *redis.Client) {
	cfg, log := app.cfg, app.logger

	if cfg.BookingRatePerMinute <= 0 {
		return nil, nil
	}

	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(cfg.RedisURL)
		if err == nil {
			ctx, cancel := context.WithTimeout(app.ctx, 2*time.Second)
			err = client.Ping(ctx).Err()
			cancel()
			if err == nil {
				log.Info("rate limiter: redis")
				return ratelimit.NewRedisLimiter(client, cfg.BookingRatePerMinute), client
			}
			_ = client.Close()
		}
		log.Warn("redis unavailable, using in-memory rate limiter", zap.Error(err))
	}

	return ratelimit.NewMemoryLimiter(cfg.BookingRatePerMinute), nil
}
