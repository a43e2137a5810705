package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"yummiz/internal/api"
	"yummiz/internal/config"
	"yummiz/internal/db"
	"yummiz/internal/imagehost"
	"yummiz/internal/mq"
	"yummiz/internal/ratelimit"
	redisclient "yummiz/internal/redis"
	"yummiz/internal/repository"
	"yummiz/internal/service"
	"yummiz/internal/sms"
)

const (
	otpRateLimit  = 5
	otpRateWindow = 15 * time.Minute
)

func main() {
	// Load config
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Fatal("Schema setup failed", zap.Error(err))
	}

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init RabbitMQ publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		logger.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	// External collaborators
	uploader, err := imagehost.NewCloudinaryUploader(cfg.Cloudinary)
	if err != nil {
		logger.Fatal("Cloudinary configuration failed", zap.Error(err))
	}
	smsSender := sms.NewCircuitSender(sms.NewTwilioSender(cfg.Twilio), logger)

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	recipeRepo := repository.NewRecipeRepository(dbConn)
	requestRepo := repository.NewRecipeRequestRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// Init Services
	authService := service.NewAuthService(userRepo, smsSender, cfg.JWT.Secret, logger)
	recipeService := service.NewRecipeService(recipeRepo, uploader, logger)
	requestService := service.NewRequestService(requestRepo, publisher, logger)

	// Init Handlers
	authHandler := api.NewAuthHandler(authService, cfg.Server)
	recipeHandler := api.NewRecipeHandler(recipeService)
	requestHandler := api.NewRequestHandler(requestService)
	notificationHandler := api.NewNotificationHandler(notificationRepo)

	otpLimiter := ratelimit.NewFixedWindow(rdb, otpRateLimit, otpRateWindow)

	// Router
	router := api.NewRouter(authHandler, recipeHandler, requestHandler, notificationHandler, otpLimiter, cfg)

	// Start API server
	logger.Info("Starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
