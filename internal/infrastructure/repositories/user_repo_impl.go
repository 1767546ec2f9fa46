package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Emails are stored lowercased so the unique
// index doubles as the case-insensitive uniqueness guarantee.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	m := &models.User{
		ID:                 user.ID,
		Email:              strings.ToLower(user.Email),
		PasswordHash:       user.PasswordHash,
		Role:               string(user.Role),
		IsActive:           user.IsActive,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.Email = m.Email
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// UpdateCredentials sets the password hash, activation flag and must-change
// flag in one UPDATE
func (r *UserRepository) UpdateCredentials(ctx context.Context, id uuid.UUID, passwordHash string, isActive, mustChange bool) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        passwordHash,
			"is_active":            isActive,
			"must_change_password": mustChange,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword sets a new hash and clears the must-change flag
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        passwordHash,
			"must_change_password": false,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListWithPendingProof returns users whose payment proof is still pending,
// newest first
func (r *UserRepository) ListWithPendingProof(ctx context.Context, limit, offset int) ([]*entities.User, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	base := db.Table("users").
		Joins("JOIN payment_proofs ON payment_proofs.user_id = users.id").
		Where("payment_proofs.status = ?", string(entities.PaymentStatusPending))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Order("users.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var userModels []models.User
	if err := query.Select("users.*").Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, toUserEntity(&userModels[i]))
	}
	return users, total, nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                 m.ID,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Role:               entities.UserRole(m.Role),
		IsActive:           m.IsActive,
		MustChangePassword: m.MustChangePassword,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
