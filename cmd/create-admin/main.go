package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"student-portal.backend/internal/config"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/infrastructure/models"
	"student-portal.backend/internal/infrastructure/repositories"
	"student-portal.backend/pkg/crypto"
)

// Seeds the bootstrap admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
// Safe to run repeatedly: an existing admin is left untouched.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD must be set")
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.StudentProfile{}, &models.PaymentProof{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db)

	if existing, err := userRepo.GetByEmail(ctx, cfg.Admin.Email); err == nil {
		log.Printf("Admin %s already exists (id=%s), nothing to do", existing.Email, existing.ID)
		return nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := crypto.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entities.User{
		ID:           uuid.New(),
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         entities.UserRoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Printf("Admin %s created (id=%s)", admin.Email, admin.ID)
	return nil
}
