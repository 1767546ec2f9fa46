package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"student-portal.backend/internal/config"
	"student-portal.backend/internal/domain/services"
	"student-portal.backend/internal/infrastructure/mail"
	"student-portal.backend/internal/infrastructure/models"
	"student-portal.backend/internal/infrastructure/repositories"
	"student-portal.backend/internal/infrastructure/storage"
	"student-portal.backend/internal/interfaces/http/handlers"
	"student-portal.backend/internal/interfaces/http/middleware"
	"student-portal.backend/internal/usecases"
	"student-portal.backend/pkg/jwt"
	"student-portal.backend/pkg/logger"
	"student-portal.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func newFileStorage(cfg *config.Config) (services.FileStorage, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return storage.NewS3Storage(context.Background(), cfg.Storage)
	case "local", "":
		return storage.NewLocalStorage(cfg.Storage.LocalBaseDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&models.User{}, &models.StudentProfile{}, &models.PaymentProof{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	fileStorage, err := newFileStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}
	notifier := mail.NewSMTPNotifier(cfg.SMTP)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewStudentProfileRepository(db)
	proofRepo := repositories.NewPaymentProofRepository(db)
	uow := repositories.NewUnitOfWork(db)

	registrationUsecase := usecases.NewRegistrationUsecase(userRepo, profileRepo, proofRepo, uow, fileStorage, notifier)
	verificationUsecase := usecases.NewVerificationUsecase(userRepo, proofRepo, uow, notifier)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)

	registrationHandler := handlers.NewRegistrationHandler(registrationUsecase)
	authHandler := handlers.NewAuthHandler(authUsecase)
	adminHandler := handlers.NewAdminHandler(verificationUsecase)

	authMiddleware := middleware.AuthMiddleware(authUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerRoutes(r, routeDeps{
		registrationHandler: registrationHandler,
		authHandler:         authHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
	})

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
