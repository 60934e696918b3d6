package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andsetyobudi/ban-bengkel/internal/command"
	"github.com/andsetyobudi/ban-bengkel/internal/handler"
	"github.com/andsetyobudi/ban-bengkel/internal/query"
	"github.com/andsetyobudi/ban-bengkel/internal/repository"
	"github.com/andsetyobudi/ban-bengkel/shared/config"
	"github.com/andsetyobudi/ban-bengkel/shared/database"
	"github.com/andsetyobudi/ban-bengkel/shared/events"
	"github.com/andsetyobudi/ban-bengkel/shared/logging"
	"github.com/andsetyobudi/ban-bengkel/shared/middleware"
	redisClient "github.com/andsetyobudi/ban-bengkel/shared/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Database connection (write store + read queries)
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate schema")
		}
		log.Info().Msg("schema migrated")
	}

	// Redis connection (view cache + event streaming)
	redis, err := redisClient.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redis.Close()

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	writeRepo := repository.NewTransaksiWriteRepository(db.Gorm)
	readRepo := repository.NewTransaksiReadRepository(db.SQL, redis.Client)
	adminRepo := repository.NewAdminRepository(db.SQL)

	commandSvc := command.NewTransaksiCommandService(writeRepo, readRepo, publisher)
	querySvc := query.NewTransaksiQueryService(readRepo)
	authSvc := query.NewAuthQueryService(adminRepo, []byte(cfg.JWTSecret), query.DefaultTokenTTL)

	if err := command.NewAdminCommandService(adminRepo).EnsureAdmin(ctx, cfg.BootstrapAdmin.Username, cfg.BootstrapAdmin.Password); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin")
	}

	var auth gin.HandlerFunc
	if cfg.AuthDisabled {
		log.Warn().Msg("admin authentication is disabled")
	} else {
		auth = middleware.AuthMiddleware([]byte(cfg.JWTSecret))
	}

	router := newRouter(
		handler.NewTransaksiHandler(commandSvc, querySvc),
		handler.NewAuthHandler(authSvc),
		auth,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("admin service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
