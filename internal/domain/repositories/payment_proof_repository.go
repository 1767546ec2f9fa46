package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"student-portal.backend/internal/domain/entities"
)

// PaymentProofRepository defines payment proof data operations
type PaymentProofRepository interface {
	Create(ctx context.Context, proof *entities.PaymentProof) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.PaymentProof, error)
	// UpdateStatusIfPending moves the proof out of pending with a conditional
	// UPDATE (status = 'pending' in the WHERE clause). It returns
	// domainerrors.ErrAlreadyProcessed when no row was claimed, which makes
	// concurrent double-processing resolve to exactly one winner.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, reason null.String) error
}
