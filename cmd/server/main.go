package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"youclone/internal/api"
	"youclone/internal/cache"
	"youclone/internal/config"
	"youclone/internal/logger"
	"youclone/internal/repository"
	"youclone/internal/repository/memory"
	"youclone/internal/repository/mongo"
	"youclone/internal/seed"
	"youclone/internal/service"
	"youclone/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("Could not load config")
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Could not initialize logger")
	}
	log.WithFields(logrus.Fields{
		"address": cfg.Server.Address,
		"driver":  cfg.Database.Driver,
	}).Info("Starting YouClone API server")

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
	log.Info("Server exiting")
}

func run(cfg config.Config, log *logrus.Logger) error {
	ctx := context.Background()

	// --- Repositories ---
	repos, closeDB, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	// --- Initialize Storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			return err
		}
	} else {
		log.Info("S3 bucket not configured, uploads disabled")
	}

	// --- Redis / rate limiting (optional) ---
	var limiter *api.RateLimiter
	if cfg.RateLimit.Enabled {
		if rdb := cache.Connect(ctx, cfg.Redis, log); rdb != nil {
			defer rdb.Close()
			limiter = api.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		}
	}

	// --- Initialize Services ---
	services := api.Services{
		Auth:     service.NewAuthService(repos.Users, cfg.JWT.Secret, cfg.JWT.Expiration),
		Users:    service.NewUserService(repos.Users, repos.Channels),
		Channels: service.NewChannelService(repos.Channels, repos.Videos, repos.Users),
		Videos:   service.NewVideoService(repos.Videos, repos.Channels, repos.Comments, repos.Users, fileStorage, log),
		Comments: service.NewCommentService(repos.Comments, repos.Videos, repos.Users, repos.Channels),
		Uploads:  service.NewUploadService(fileStorage, log),
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(log, cfg.Server.CORSOrigin)
	api.SetupRoutes(router, services, limiter)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.Server.Address).Info("Listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down server")
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return server.Shutdown(ctxShutdown)
}

// openRepositories builds the repositories for the configured driver and
// returns a function releasing the underlying connection.
func openRepositories(ctx context.Context, cfg config.Config, log *logrus.Logger) (repository.Repositories, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		repos := memory.NewRepositories()
		if cfg.Database.Seed {
			if _, err := seed.Run(ctx, repos, log); err != nil {
				return repository.Repositories{}, nil, err
			}
		}
		log.Warn("Using in-memory storage, data is lost on restart")
		return repos, func() {}, nil
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("database", cfg.Database.Name).Info("Database connection established")

	closeDB := func() {
		log.Info("Disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}

	// The unique indexes back the duplicate checks, so they exist before serving
	indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(indexCtx, appDB, log); err != nil {
		closeDB()
		return repository.Repositories{}, nil, err
	}
	return mongo.NewRepositories(appDB), closeDB, nil
}
