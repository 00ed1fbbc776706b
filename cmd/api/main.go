package main

import (
	"context"
	"log"
	"os"

	"contacts-api/config"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/handler"
	appredis "contacts-api/internal/redis"
	"contacts-api/internal/repository"
	"contacts-api/internal/server"
	"contacts-api/internal/services"
	"contacts-api/internal/storage"
	"contacts-api/internal/upload"
	"contacts-api/pkg/database"
	"contacts-api/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	// Connect to Database
	database.Connect(cfg)
	if err := database.DB.AutoMigrate(&user.User{}); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadTempDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload temp dir: %v", err)
	}

	store, err := buildAvatarStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize avatar store: %v", err)
	}

	userRepo := repository.NewUserRepository(database.DB)
	authService := services.NewAuthService(userRepo, cfg)
	avatarService := services.NewAvatarService(userRepo, store)
	intake := upload.NewIntake(cfg.UploadTempDir)

	redisClient := appredis.NewClient(appredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	limiter := appredis.NewRateLimiter(redisClient, appredis.DefaultRateLimitConfig())

	handlers := &server.Handlers{
		Auth: handler.NewAuthHandler(authService),
		User: handler.NewUserHandler(avatarService, l),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, intake, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

func buildAvatarStore(cfg *config.Config) (storage.Store, error) {
	if cfg.AvatarStore == "s3" {
		return storage.NewS3Store(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
	}
	return storage.NewLocalStore(cfg.AvatarDir)
}
