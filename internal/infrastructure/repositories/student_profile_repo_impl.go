package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/infrastructure/models"
)

// StudentProfileRepository implements student profile data operations
type StudentProfileRepository struct {
	db *gorm.DB
}

// NewStudentProfileRepository creates a new student profile repository
func NewStudentProfileRepository(db *gorm.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

// Create creates a new student profile
func (r *StudentProfileRepository) Create(ctx context.Context, profile *entities.StudentProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	m := &models.StudentProfile{
		ID:        profile.ID,
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Phone:     profile.Phone,
		Location:  profile.Location,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByUserID gets the profile owned by a user
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.StudentProfile, error) {
	var m models.StudentProfile
	err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.StudentProfile{
		ID:        m.ID,
		UserID:    m.UserID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     m.Phone,
		Location:  m.Location,
	}, nil
}
