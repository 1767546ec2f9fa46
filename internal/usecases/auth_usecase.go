package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/domain/repositories"
	"student-portal.backend/pkg/crypto"
	"student-portal.backend/pkg/jwt"
	"student-portal.backend/pkg/metrics"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login authenticates a user and returns a token. Unknown email and wrong
// password produce the same ErrInvalidCredentials, so a caller cannot probe
// which addresses are registered. An inactive account never authenticates:
// is_active is enforced on top of the hash check, and unapproved accounts
// additionally carry a placeholder hash no password verifies against.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, domainerrors.ErrInactiveAccount
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &entities.AuthResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

// Authenticate resolves a bearer token to its user. Any token or lookup
// failure collapses into ErrUnauthorized.
func (u *AuthUsecase) Authenticate(ctx context.Context, tokenString string) (*entities.User, error) {
	claims, err := u.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}
	return user, nil
}

// ChangePassword verifies the old password, then stores the new hash and
// clears the must-change flag in one update
func (u *AuthUsecase) ChangePassword(ctx context.Context, user *entities.User, input *entities.ChangePasswordInput) error {
	if !crypto.CheckPassword(input.OldPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, user.ID, passwordHash)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
