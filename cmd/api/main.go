package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/marinedeck/maritime-api/internal/blobstore"
	"github.com/marinedeck/maritime-api/internal/config"
	"github.com/marinedeck/maritime-api/internal/database"
	"github.com/marinedeck/maritime-api/internal/handler"
	"github.com/marinedeck/maritime-api/internal/middleware"
	"github.com/marinedeck/maritime-api/internal/repository"
	"github.com/marinedeck/maritime-api/internal/router"
	"github.com/marinedeck/maritime-api/internal/service"
	cloud "github.com/marinedeck/maritime-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise storage: %v", err)
	}

	redisClient := buildRedis(cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		cloudUploader, err := cloud.NewUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudUploader
	} else {
		logger.Warn().Msg("cloudinary not configured, certificate uploads disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	authService := service.NewAuthService(repos, validate, cfg.JWTSecret, cfg.JWTExpiry, logger)
	instituteService := service.NewInstituteService(repos, validate, logger)
	courseService := service.NewCourseService(repos, validate, logger)
	batchService := service.NewBatchService(repos, validate, logger)
	bookingService := service.NewBookingService(repos, validate, logger)
	paymentService := service.NewPaymentService(repos, validate, logger)
	certificateService := service.NewCertificateService(repos, validate, uploader, logger)
	enrollmentService := service.NewEnrollmentService(repos, validate, logger)
	analyticsService := service.NewAnalyticsService(repos, redisClient, cfg.AnalyticsCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		InstituteHandler:   handler.NewInstituteHandler(instituteService, logger),
		AdminHandler:       handler.NewAdminHandler(instituteService, bookingService, certificateService, analyticsService, logger),
		CourseHandler:      handler.NewCourseHandler(courseService, batchService, enrollmentService, logger),
		BatchHandler:       handler.NewBatchHandler(batchService, bookingService, logger),
		BookingHandler:     handler.NewBookingHandler(bookingService, logger),
		PaymentHandler:     handler.NewPaymentHandler(paymentService, logger),
		CertificateHandler: handler.NewCertificateHandler(certificateService, logger),
		EnrollmentHandler:  handler.NewEnrollmentHandler(enrollmentService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildRepositories(cfg config.Config, logger zerolog.Logger) (repository.Repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverBlob:
		store := blobstore.New(blobstore.NewFileStorage(cfg.BlobPath),
			blobstore.WithLatency(cfg.BlobLatency),
			blobstore.WithLogger(logger),
		)
		logger.Info().Str("path", cfg.BlobPath).Dur("latency", cfg.BlobLatency).Msg("using blob storage")
		return blobstore.NewRepositories(store), nil
	default:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return repository.Repositories{}, err
		}
		if err := database.Migrate(db); err != nil {
			return repository.Repositories{}, err
		}
		logger.Info().Msg("using postgres storage")
		return repository.NewGorm(db), nil
	}
}

func buildRedis(cfg config.Config, logger zerolog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		logger.Warn().Msg("redis not configured, analytics cache disabled")
		return nil
	}

	client, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	return client
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
