package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andsetyobudi/ban-bengkel/internal/audit"
	"github.com/andsetyobudi/ban-bengkel/shared/config"
	"github.com/andsetyobudi/ban-bengkel/shared/events"
	"github.com/andsetyobudi/ban-bengkel/shared/logging"
	redisClient "github.com/andsetyobudi/ban-bengkel/shared/redis"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const consumerGroup = "audit-worker-group"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb client")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongodb")
		}
	}()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mongodb")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	redis, err := redisClient.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redis.Close()

	consumer, _ := os.Hostname()
	if consumer == "" {
		consumer = "audit-consumer-1"
	}

	subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
		Group:    consumerGroup,
		Consumer: consumer,
		Stream:   events.TransaksiEventsStream,
		Handler:  audit.Handler(audit.NewMongoRepository(mongoClient, cfg.Mongo.Database)),
	})

	if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("subscriber stopped")
		return
	}
	log.Info().Msg("audit worker stopped")
}
