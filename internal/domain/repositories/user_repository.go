package repositories

import (
	"context"

	"github.com/google/uuid"
	"student-portal.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// UpdateCredentials sets the password hash together with the activation
	// and must-change flags in a single UPDATE.
	UpdateCredentials(ctx context.Context, id uuid.UUID, passwordHash string, isActive, mustChange bool) error
	// UpdatePassword sets a new hash and clears the must-change flag.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// ListWithPendingProof returns users whose payment proof is still pending.
	ListWithPendingProof(ctx context.Context, limit, offset int) ([]*entities.User, int64, error)
}

// StudentProfileRepository defines student profile data operations
type StudentProfileRepository interface {
	Create(ctx context.Context, profile *entities.StudentProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.StudentProfile, error)
}
