package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"student-portal.backend/internal/domain/entities"
	domainerrors "student-portal.backend/internal/domain/errors"
	"student-portal.backend/internal/infrastructure/models"
)

// PaymentProofRepository implements payment proof data operations
type PaymentProofRepository struct {
	db *gorm.DB
}

// NewPaymentProofRepository creates a new payment proof repository
func NewPaymentProofRepository(db *gorm.DB) *PaymentProofRepository {
	return &PaymentProofRepository{db: db}
}

// Create creates a new payment proof
func (r *PaymentProofRepository) Create(ctx context.Context, proof *entities.PaymentProof) error {
	if proof.ID == uuid.Nil {
		proof.ID = uuid.New()
	}
	if proof.SubmittedAt.IsZero() {
		proof.SubmittedAt = time.Now()
	}
	m := &models.PaymentProof{
		ID:          proof.ID,
		UserID:      proof.UserID,
		FileLocator: proof.FileLocator,
		Status:      string(proof.Status),
		SubmittedAt: proof.SubmittedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByUserID gets the payment proof owned by a user
func (r *PaymentProofRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.PaymentProof, error) {
	var m models.PaymentProof
	err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProofEntity(&m), nil
}

// UpdateStatusIfPending performs the conditional transition out of pending.
// The WHERE clause re-checks the status inside the surrounding transaction,
// so of two concurrent processors exactly one claims the row; the other sees
// zero rows affected and gets ErrAlreadyProcessed.
func (r *PaymentProofRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, reason null.String) error {
	updates := map[string]interface{}{
		"status":      string(status),
		"reviewed_at": time.Now(),
	}
	if reason.Valid {
		updates["rejection_reason"] = reason.String
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.PaymentProof{}).
		Where("id = ? AND status = ?", id, string(entities.PaymentStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyProcessed
	}
	return nil
}

func toProofEntity(m *models.PaymentProof) *entities.PaymentProof {
	return &entities.PaymentProof{
		ID:              m.ID,
		UserID:          m.UserID,
		FileLocator:     m.FileLocator,
		Status:          entities.PaymentStatus(m.Status),
		RejectionReason: null.StringFromPtr(m.RejectionReason),
		SubmittedAt:     m.SubmittedAt,
		ReviewedAt:      null.TimeFromPtr(m.ReviewedAt),
	}
}
