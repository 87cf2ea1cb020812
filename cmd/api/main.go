package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/profislots/profislots-api/internal/audit"
	"github.com/profislots/profislots-api/internal/config"
	dbpkg "github.com/profislots/profislots-api/internal/db"
	"github.com/profislots/profislots-api/internal/logger"
	"github.com/profislots/profislots-api/internal/media"
	"github.com/profislots/profislots-api/internal/routes"
	"github.com/profislots/profislots-api/internal/validators"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db := dbpkg.NewDB(cfg, log)

	if err := validators.RegisterBindings(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log.WithField("component", "audit"))
	defer dispatcher.Close()

	infra := routes.Infra{
		Log:   log,
		Audit: dispatcher,
	}

	if cfg.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, rate limiting and revocation will fail open")
		}
		cancel()

		infra.Redis = rdb
	}

	if cfg.MediaEnabled() {
		infra.Photos = media.NewStore(media.NewS3Client(cfg), cfg.S3Bucket, cfg.S3PublicURL)
	} else {
		log.Info("S3_BUCKET not set, staff photo uploads disabled")
	}

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, infra)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(srv, log)
}

func waitForShutdown(srv *http.Server, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("server stopped")
}
