package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ForumApp/forum-service/internal/config"
	"github.com/ForumApp/forum-service/internal/document"
	"github.com/ForumApp/forum-service/internal/handler"
	"github.com/ForumApp/forum-service/internal/repository"
	"github.com/ForumApp/forum-service/internal/repository/postgres"
	"github.com/ForumApp/forum-service/internal/server"
	"github.com/ForumApp/forum-service/internal/service"
	"github.com/ForumApp/forum-service/internal/storage"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	dbConfig := config.DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
	db, err := postgres.DB(ctx, dbConfig)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	redisOptions := &redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	}
	rdb := redis.NewClient(redisOptions)
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	storageConfig := config.StorageConfig{
		Endpoint:      os.Getenv("S3_ENDPOINT"),
		AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		SecretKey:     os.Getenv("S3_SECRET_KEY"),
		Bucket:        viper.GetString("storage.bucket"),
		PublicURL:     viper.GetString("storage.public-url"),
		UseSSL:        os.Getenv("S3_USE_SSL") == "true",
		MaxUploadSize: viper.GetInt64("storage.max-upload-size"),
	}
	store, err := storage.New(ctx, storageConfig)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to object storage: %s", err.Error())
	}
	logger.Info("Successfully connected to object storage")

	renderer := document.NewRenderer(logger, viper.GetStringSlice("images.allowed-hosts"))

	repos := repository.New(db, rdb)
	services := service.New(logger, repos, store, renderer)
	handlers := handler.New(services)

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}

	go func() {
		if err := srv.Run(serverConfig); err != nil {
			logger.Sugar().Infof("http server stopped: %s", err.Error())
		}
	}()
	logger.Sugar().Infof("Server is running on port %s", serverConfig.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown server gracefully: %s", err.Error())
	}

	db.Close()
	if err := rdb.Close(); err != nil {
		logger.Sugar().Errorf("failed to close redis connection: %s", err.Error())
	}

	logger.Info("Server exited")
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}
