package main

import (
	"time"

	"go.uber.org/zap"

	"yummiz/internal/config"
	"yummiz/internal/db"
	"yummiz/internal/mq"
	"yummiz/internal/mqhandler"
	redisclient "yummiz/internal/redis"
	"yummiz/internal/repository"
	"yummiz/internal/util"
)

func main() {
	// Load config
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting notification worker...")

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour)

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	logger.Info("Database connection established")

	// Init Repositories
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// Init Handlers
	decidedHandler := mqhandler.NewRequestDecidedHandler(notificationRepo, deduper, logger)

	// Consumer for decision notifications
	logger.Info("Initializing decision consumer", zap.String("queue", "recipe_request.decided.notify.q"))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "recipe_request.decided.notify.q", mq.RoutingKeyRequestDecided, logger)
	if err != nil {
		logger.Fatal("failed to init decision consumer", zap.Error(err))
	}
	consumer.SetHandler(decidedHandler.HandleRequestDecided)
	go func() {
		logger.Info("Starting decision consumer")
		if err := consumer.StartConsuming(); err != nil {
			logger.Fatal("decision consumer failed", zap.Error(err))
		}
	}()
	defer consumer.Close()

	logger.Info("Consumer started, worker is ready to process messages")

	// Keep worker running
	select {}
}
