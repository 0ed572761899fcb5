package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/wb-service/portal/backend/config"
	"github.com/wb-service/portal/backend/internal/api"
	"github.com/wb-service/portal/backend/internal/database"
	"github.com/wb-service/portal/backend/internal/logging"
	"github.com/wb-service/portal/backend/internal/middleware"
	"github.com/wb-service/portal/backend/internal/server"
	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/storage"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}
	logger.Info().Str("environment", string(cfg.Environment)).Msg("starting portal api")

	if err := run(rootCtx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("portal api stopped with error")
		os.Exit(1)
	}
	logger.Info().Msg("portal api stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	location, err := cfg.App.Location()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, logger); err != nil {
			return err
		}
	}

	var uploadLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled() {
		client, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			// Uploads stay available without rate limiting
			logger.Warn().Err(err).Msg("redis unavailable, upload rate limiting disabled")
		} else {
			defer closeRedis(client, logger)
			uploadLimiter = middleware.NewUploadRateLimiter(client, cfg.Storage.UploadRateLimit, cfg.Storage.UploadRateWindow)
		}
	}

	store, err := newStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}

	writes := storage.NewDispatcher(cfg.Storage.WriteWorkers, cfg.Storage.WriteQueue, logger.With().Str("component", "static_writes").Logger())

	router := api.NewRouter(newDeps(cfg, db, store, writes, uploadLimiter, location, logger))
	srv := server.New(cfg.Server, router, logger)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(srv.Start)
	group.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http server shutdown failed")
		}
		// Pending file writes finish after the last request is served
		return writes.Close(shutdownCtx)
	})

	return group.Wait()
}

func newDeps(cfg *config.Config, db *gorm.DB, store storage.Store, writes storage.Submitter, limiter *middleware.RateLimiter, location *time.Location, logger zerolog.Logger) api.Deps {
	access := service.NewAccessService(db)
	changes := service.NewChangeLogRecorder(time.Now)

	return api.Deps{
		Profiles:  service.NewProfileService(db, access, changes, cfg.App.WebURL, logger),
		Birthdays: service.NewBirthdayService(db, time.Now, location),
		Static:    service.NewStaticService(db, store, writes, cfg.Storage.MaxUploadBytes(), logger),
		Auth:      service.NewAuthService(db, cfg.Auth.JWTSecret, time.Now),
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
		UploadLimiter:  limiter,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DefaultLang:    cfg.App.DefaultLang,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes(),
	}
}

func newStore(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (storage.Store, error) {
	if cfg.Driver == "s3" {
		client, err := config.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("storing static files in s3")
		return storage.NewS3(client, cfg.S3Bucket, cfg.S3Prefix), nil
	}

	logger.Info().Str("path", cfg.StaticPath).Msg("storing static files on local disk")
	local, err := storage.NewLocal(cfg.StaticPath)
	if err != nil {
		return nil, err
	}
	return local, nil
}

func closeRedis(client *redis.Client, logger zerolog.Logger) {
	if err := client.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close redis")
	}
}
