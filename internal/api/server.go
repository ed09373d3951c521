package api

import (
	"context"

	"estimator/internal/app/config"
	"estimator/internal/app/export"
	"estimator/internal/app/handler"
	"estimator/internal/app/middleware"
	"estimator/internal/app/redis"
	"estimator/internal/app/repository"
	"estimator/internal/app/storage"
	"estimator/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	setupLogging(cfg.LogLevel)

	repo, err := repository.New(cfg.DSN)
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatalf("error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := storage.NewMinIOClient(cfg.Minio)
	if err != nil {
		logrus.Fatalf("error connecting to object storage: %v", err)
	}

	handler.RegisterValidators()

	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)
	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, export.NewPDFRenderer(cfg.FontPath), authHandler)

	application := pkg.NewApp(cfg, gin.Default(), apiHandler, authMiddleware)
	application.RunApp()

	logrus.Info("Server down")
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
